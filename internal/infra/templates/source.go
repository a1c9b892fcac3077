// Package templates resolves template references onto local paths.
package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/kazedev/packerctl/internal/domain"
)

// Resolver maps template references to local paths, cloning git sources
// into a cache directory.
type Resolver struct {
	auth     transport.AuthMethod
	cacheDir string
}

// NewResolver creates a Resolver that keeps git checkouts under cacheDir.
func NewResolver(cacheDir string) *Resolver {
	r := &Resolver{cacheDir: cacheDir}
	r.setupAuth()
	return r
}

// Ensure Resolver implements domain.TemplateSource interface.
var _ domain.TemplateSource = (*Resolver)(nil)

// IsGitSource reports whether source looks like a git URL rather than a
// local directory.
func IsGitSource(source string) bool {
	for _, prefix := range []string{"https://", "http://", "git://", "ssh://", "git@"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// ResolveTemplate returns the local path for template. An empty source
// passes the template through unchanged; a local directory source is joined
// with the template; a git URL (optionally suffixed `@ref`) is cloned into
// the cache and the template resolved inside the checkout. An existing
// checkout is reused without touching the network.
func (r *Resolver) ResolveTemplate(ctx context.Context, source, template string) (string, error) {
	if source == "" {
		return template, nil
	}
	if !IsGitSource(source) {
		return filepath.Join(source, template), nil
	}

	url, ref := splitRef(source)
	dir := r.checkoutPath(url, ref)

	if _, err := git.PlainOpen(dir); err != nil {
		if err := r.clone(ctx, url, ref, dir); err != nil {
			return "", fmt.Errorf("clone %s: %w", url, err)
		}
	}
	return filepath.Join(dir, template), nil
}

// splitRef cuts an optional trailing `@ref` off a git URL. The user/host
// separator of scp-style URLs (git@host:path) is left alone.
func splitRef(source string) (url, ref string) {
	at := strings.LastIndex(source, "@")
	if at <= 0 {
		return source, ""
	}
	rest := source[at+1:]
	if strings.ContainsAny(rest, "/:") {
		return source, ""
	}
	return source[:at], rest
}

// checkoutPath generates the cache path for a URL and ref, e.g.
// "https://github.com/user/tpls.git@v1" -> "<cache>/github.com/user/tpls@v1".
func (r *Resolver) checkoutPath(url, ref string) string {
	path := url
	path = strings.TrimPrefix(path, "https://")
	path = strings.TrimPrefix(path, "http://")
	path = strings.TrimPrefix(path, "git://")
	path = strings.TrimPrefix(path, "ssh://")
	path = strings.TrimPrefix(path, "git@")
	path = strings.TrimSuffix(path, ".git")
	path = strings.ReplaceAll(path, ":", "/")
	if ref != "" {
		path += "@" + ref
	}
	return filepath.Join(r.cacheDir, path)
}

// clone performs a shallow clone of url at ref into dest. A ref may name a
// branch or a tag, so both reference forms are attempted.
func (r *Resolver) clone(ctx context.Context, url, ref, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	refNames := []plumbing.ReferenceName{""}
	if ref != "" {
		refNames = []plumbing.ReferenceName{
			plumbing.NewBranchReferenceName(ref),
			plumbing.NewTagReferenceName(ref),
		}
	}

	var lastErr error
	for _, refName := range refNames {
		_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
			URL:           url,
			Auth:          r.auth,
			ReferenceName: refName,
			SingleBranch:  refName != "",
			Depth:         1,
		})
		if err == nil {
			return nil
		}
		lastErr = err
		// Clean up the failed attempt before trying the next form.
		_ = os.RemoveAll(dest)
	}
	return lastErr
}

// setupAuth configures authentication from available credentials. With
// nothing configured public HTTPS sources still work.
func (r *Resolver) setupAuth() {
	if auth := trySSHAuth(); auth != nil {
		r.auth = auth
		return
	}
	if token := gitToken(); token != "" {
		r.auth = &githttp.BasicAuth{Username: "git", Password: token}
	}
}

func trySSHAuth() transport.AuthMethod {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	for _, name := range []string{"id_ed25519", "id_rsa", "id_ecdsa"} {
		keyPath := filepath.Join(home, ".ssh", name)
		if _, err := os.Stat(keyPath); err != nil {
			continue
		}
		if auth, err := ssh.NewPublicKeysFromFile("git", keyPath, ""); err == nil {
			return auth
		}
	}
	return nil
}

func gitToken() string {
	for _, env := range []string{"GITHUB_TOKEN", "GIT_TOKEN"} {
		if token := os.Getenv(env); token != "" {
			return token
		}
	}
	return ""
}
