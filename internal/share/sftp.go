package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultDialTimeout bounds the TCP connect and SSH handshake.
const DefaultDialTimeout = 15 * time.Second

// ErrSFTPConfig indicates an incomplete SFTP target.
var ErrSFTPConfig = errors.New("invalid sftp configuration")

// SFTPConfig describes an SFTP upload target.
type SFTPConfig struct {
	Addr       string // host:port
	User       string
	KeyFile    string // private key, unencrypted
	KnownHosts string // empty = ~/.ssh/known_hosts
	RemoteDir  string // empty = login directory
	Timeout    time.Duration
}

// connectFunc opens an SFTP session. The returned closer ends the underlying transport.
type connectFunc func(ctx context.Context) (*sftp.Client, io.Closer, error)

// SFTPSharer uploads documents to a directory on an SFTP server.
type SFTPSharer struct {
	cfg     SFTPConfig
	connect connectFunc
}

// NewSFTPSharer validates cfg and returns a sharer that connects over SSH
// with public key authentication and known_hosts verification.
func NewSFTPSharer(cfg SFTPConfig) (*SFTPSharer, error) {
	if cfg.Addr == "" || cfg.User == "" || cfg.KeyFile == "" {
		return nil, fmt.Errorf("%w: addr, user and key file are required", ErrSFTPConfig)
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return nil, fmt.Errorf("%w: addr %q: %v", ErrSFTPConfig, cfg.Addr, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDialTimeout
	}

	s := &SFTPSharer{cfg: cfg}
	s.connect = s.dialSSH
	return s, nil
}

func (s *SFTPSharer) target() string {
	return "sftp:" + s.cfg.Addr
}

// Share uploads every path into the remote directory, creating it if needed.
func (s *SFTPSharer) Share(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{}

	client, transport, err := s.connect(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %s: %v", ErrShare, s.target(), err)
	}
	// The transport goes first: client.Close waits for its reader to see EOF
	defer func() {
		_ = transport.Close()
		_ = client.Close()
	}()

	if s.cfg.RemoteDir != "" {
		if err := client.MkdirAll(s.cfg.RemoteDir); err != nil {
			return report, fmt.Errorf("%w: creating remote %s: %v", ErrShare, s.cfg.RemoteDir, err)
		}
	}

	for _, p := range paths {
		d := Delivery{Target: s.target(), Source: p}
		if err := ctx.Err(); err != nil {
			d.Err = err
		} else {
			d.Destination, d.Err = upload(client, p, s.cfg.RemoteDir)
		}
		report.Deliveries = append(report.Deliveries, d)
	}

	return report, report.err()
}

// upload copies one local file into remoteDir, replacing an existing remote file.
func upload(client *sftp.Client, local, remoteDir string) (string, error) {
	in, err := os.Open(local) // #nosec G304 -- path comes from a produced document
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()

	// Remote paths are always slash-separated
	remote := path.Join(remoteDir, filepath.Base(local))
	out, err := client.Create(remote)
	if err != nil {
		return "", fmt.Errorf("creating remote %s: %w", remote, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("uploading %s: %w", remote, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing remote %s: %w", remote, err)
	}
	return remote, nil
}

// dialSSH connects to the server and starts the sftp subsystem.
func (s *SFTPSharer) dialSSH(ctx context.Context) (*sftp.Client, io.Closer, error) {
	clientCfg, err := s.clientConfig()
	if err != nil {
		return nil, nil, err
	}

	dialer := net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting: %w", err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, s.cfg.Addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ssh handshake: %w", err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, fmt.Errorf("starting sftp: %w", err)
	}
	return client, sshClient, nil
}

func (s *SFTPSharer) clientConfig() (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(s.cfg.KeyFile) // #nosec G304 -- key path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parsing key: %w", err)
	}

	knownHostsPath := s.cfg.KnownHosts
	if knownHostsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating known_hosts: %w", err)
		}
		knownHostsPath = filepath.Join(home, ".ssh", "known_hosts")
	}
	hostKeyCallback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("loading known_hosts: %w", err)
	}

	return &ssh.ClientConfig{
		User:            s.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         s.cfg.Timeout,
	}, nil
}
