// Package install provisions the packer binary from HashiCorp's release
// mirror.
package install

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mholt/archiver/v3"
	"golang.org/x/mod/semver"

	"github.com/kazedev/packerctl/internal/domain"
)

const defaultBaseURL = "https://releases.hashicorp.com"

// supportedPlatforms lists the GOOS/GOARCH pairs HashiCorp publishes packer
// archives for.
var supportedPlatforms = map[string][]string{
	"linux":   {"amd64", "arm64", "386", "arm"},
	"darwin":  {"amd64", "arm64"},
	"windows": {"amd64", "386"},
	"freebsd": {"amd64", "386", "arm"},
	"openbsd": {"amd64", "386"},
	"solaris": {"amd64"},
}

// Installer downloads packer releases into a directory and verifies them.
// Fields are ordered to minimize memory padding.
type Installer struct {
	executor   domain.CommandExecutor
	httpClient *http.Client
	dir        string
	baseURL    string
	goos       string
	goarch     string
}

// Option configures an Installer during construction.
type Option func(*Installer)

// WithBaseURL overrides the release mirror URL, primarily for test servers.
func WithBaseURL(base string) Option {
	return func(i *Installer) {
		i.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// New creates an Installer targeting dir. The executor is used to verify
// that an installed binary actually runs.
func New(dir string, executor domain.CommandExecutor, opts ...Option) *Installer {
	inst := &Installer{
		executor:   executor,
		httpClient: http.DefaultClient,
		dir:        dir,
		baseURL:    defaultBaseURL,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Ensure Installer implements domain.BinaryInstaller interface.
var _ domain.BinaryInstaller = (*Installer)(nil)

// Dir returns the install directory.
func (i *Installer) Dir() string {
	return i.dir
}

// ExecutablePath returns the path the packer binary is installed at.
func (i *Installer) ExecutablePath() string {
	return filepath.Join(i.dir, domain.ExecutableName())
}

// Installed reports whether the binary in the install directory answers
// `--version` with a zero exit.
func (i *Installer) Installed(ctx context.Context) bool {
	res, err := i.executor.Output(ctx, domain.ExecCommand{
		Program: i.ExecutablePath(),
		Args:    []string{"--version"},
	})
	return err == nil && res.ExitCode == 0
}

// InstalledVersion returns the semantic version the installed binary
// reports. Both the bare "1.7.8" form and the "Packer v1.7.8" form are
// accepted.
func (i *Installer) InstalledVersion(ctx context.Context) (string, error) {
	res, err := i.executor.Output(ctx, domain.ExecCommand{
		Program: i.ExecutablePath(),
		Args:    []string{"--version"},
	})
	if err != nil {
		return "", fmt.Errorf("query packer version: %w", err)
	}
	if res.ExitCode != 0 {
		return "", &domain.ExecutionError{Stderr: strings.TrimSpace(string(res.Stderr)), ExitCode: res.ExitCode}
	}
	return parseVersionOutput(string(res.Stdout))
}

// Install downloads the given packer release, verifies its SHA-256 digest
// against the published SHA256SUMS, extracts it into the install directory,
// and checks that the resulting binary runs. An empty version installs the
// default pinned release.
func (i *Installer) Install(ctx context.Context, version string) error {
	if version == "" {
		version = domain.DefaultPackerVersion
	}
	version = strings.TrimPrefix(version, "v")

	if !i.platformSupported() {
		return fmt.Errorf("%s/%s: %w", i.goos, i.goarch, domain.ErrUnsupportedPlatform)
	}

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return fmt.Errorf("create install dir: %w", err)
	}

	archiveName := fmt.Sprintf("packer_%s_%s_%s.zip", version, i.goos, i.goarch)
	archivePath, err := i.download(ctx, version, archiveName)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(archivePath) }()

	if err := i.verify(ctx, version, archiveName, archivePath); err != nil {
		return err
	}

	zip := &archiver.Zip{OverwriteExisting: true, MkdirAll: true}
	if err := zip.Unarchive(archivePath, i.dir); err != nil {
		return fmt.Errorf("extract %s: %w", archiveName, err)
	}

	exe := i.ExecutablePath()
	if err := os.Chmod(exe, 0o755); err != nil {
		return fmt.Errorf("chmod %s: %w", exe, err)
	}

	if !i.Installed(ctx) {
		return fmt.Errorf("installed binary at %s does not answer --version", exe)
	}
	return nil
}

// Ensure installs the given version unless a working binary at least that
// new is already present. It reports whether an install was performed.
func (i *Installer) Ensure(ctx context.Context, version string) (bool, error) {
	if i.Installed(ctx) {
		if version == "" {
			return false, nil
		}
		current, err := i.InstalledVersion(ctx)
		if err == nil && semver.Compare(canonical(current), canonical(version)) >= 0 {
			return false, nil
		}
	}
	if err := i.Install(ctx, version); err != nil {
		return false, err
	}
	return true, nil
}

// download fetches the release archive into a temp file inside the install
// directory and returns its path.
func (i *Installer) download(ctx context.Context, version, archiveName string) (string, error) {
	url := fmt.Sprintf("%s/packer/%s/%s", i.baseURL, version, archiveName)
	body, err := i.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	tmp, err := os.CreateTemp(i.dir, "packer-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}
	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", archiveName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp archive: %w", err)
	}
	return tmp.Name(), nil
}

// verify checks the downloaded archive against the release's SHA256SUMS
// file before anything is extracted.
func (i *Installer) verify(ctx context.Context, version, archiveName, archivePath string) error {
	url := fmt.Sprintf("%s/packer/%s/packer_%s_SHA256SUMS", i.baseURL, version, version)
	body, err := i.fetch(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	expected, err := findChecksum(body, archiveName)
	if err != nil {
		return err
	}
	return verifyFile(archivePath, expected)
}

func (i *Installer) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (i *Installer) platformSupported() bool {
	for _, arch := range supportedPlatforms[i.goos] {
		if arch == i.goarch {
			return true
		}
	}
	return false
}

// parseVersionOutput extracts a semantic version from `packer --version`
// output.
func parseVersionOutput(out string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "Packer ")
	line = strings.TrimPrefix(line, "v")
	if line == "" || !semver.IsValid("v"+line) {
		return "", fmt.Errorf("unrecognized version output %q", out)
	}
	return line, nil
}

// canonical normalizes a version string for semver comparison.
func canonical(v string) string {
	return "v" + strings.TrimPrefix(v, "v")
}
