// Package ytdlp adapts the external yt-dlp binary as the extraction and
// download engine. The binary is a black box: it either returns structured
// metadata, performs a download and reports the final on-disk path, or
// fails with a descriptive error.
package ytdlp

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tvoe/grabber/internal/config"
	"github.com/tvoe/grabber/internal/domain"
)

// Client invokes the yt-dlp binary.
type Client struct {
	binPath    string
	cookieFile string
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates a client for the configured binary.
func New(cfg config.YTDLPConfig, logger *zap.Logger) *Client {
	return &Client{
		binPath:    cfg.BinaryPath,
		cookieFile: cfg.CookieFile,
		timeout:    cfg.ProcessTimeout,
		logger:     logger,
	}
}

// Metadata fetches structured metadata for a single video without
// downloading anything.
func (c *Client) Metadata(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	stdout, err := c.run(ctx, metadataArgs(c.cookieFile, rawURL))
	if err != nil {
		return nil, err
	}
	return parseMetadata(stdout), nil
}

// Download fetches the streams selected by formatExpr into destDir and
// returns the final on-disk path reported by the engine.
func (c *Client) Download(ctx context.Context, rawURL, formatExpr, destDir string) (string, error) {
	stdout, err := c.run(ctx, downloadArgs(c.cookieFile, rawURL, formatExpr, destDir))
	if err != nil {
		return "", err
	}
	path := finalPath(string(stdout), destDir)
	if path == "" {
		return "", errors.New("download finished but no output file was found")
	}
	return path, nil
}

func metadataArgs(cookieFile, rawURL string) []string {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		"--quiet",
	}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	return append(args, rawURL)
}

func downloadArgs(cookieFile, rawURL, formatExpr, destDir string) []string {
	args := []string{
		"--no-warnings",
		"--no-playlist",
		"--quiet",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-f", formatExpr,
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
	}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	return append(args, rawURL)
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running extraction engine", zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(ctx.Err(), "extraction engine timed out")
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, errors.Wrap(err, "extraction engine failed")
	}
	return stdout.Bytes(), nil
}

// parseMetadata reads the engine's JSON dump. Fields are frequently absent
// or null; missing values degrade to zero values rather than failing.
func parseMetadata(data []byte) *domain.VideoMetadata {
	root := gjson.ParseBytes(data)
	meta := &domain.VideoMetadata{
		ID:          root.Get("id").String(),
		Title:       root.Get("title").String(),
		Thumbnail:   root.Get("thumbnail").String(),
		Duration:    int(root.Get("duration").Int()),
		Uploader:    root.Get("uploader").String(),
		ViewCount:   root.Get("view_count").Int(),
		LikeCount:   root.Get("like_count").Int(),
		Description: root.Get("description").String(),
	}
	if meta.Title == "" {
		meta.Title = "Unknown Title"
	}
	if meta.Uploader == "" {
		meta.Uploader = "Unknown"
	}
	root.Get("formats").ForEach(func(_, f gjson.Result) bool {
		meta.Formats = append(meta.Formats, domain.RawFormat{
			ID:             f.Get("format_id").String(),
			Height:         int(f.Get("height").Int()),
			Width:          int(f.Get("width").Int()),
			FPS:            int(f.Get("fps").Int()),
			VideoCodec:     f.Get("vcodec").String(),
			AudioCodec:     f.Get("acodec").String(),
			Filesize:       f.Get("filesize").Int(),
			FilesizeApprox: f.Get("filesize_approx").Int(),
			Ext:            f.Get("ext").String(),
			URL:            f.Get("url").String(),
		})
		return true
	})
	return meta
}

// finalPath extracts the downloaded file path from the engine's output,
// preferring the path printed by after_move:filepath and falling back to
// whatever single file landed in the scratch directory.
func finalPath(output, destDir string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if _, err := os.Stat(line); err == nil {
			return line
		}
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			return filepath.Join(destDir, e.Name())
		}
	}
	return ""
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
