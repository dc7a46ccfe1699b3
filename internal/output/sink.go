package output

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lamb-russell/transcript-summary-ai/internal/config"
)

// Google Docs bodies start at index 1; inserting there places text at the very beginning.
const remoteStartOffset = 1

const maxCollisions = 1000

type renderer struct {
	ext   string
	write func(path, title, formatted string) error
}

var renderers = map[string]renderer{
	config.FormatText:     {ext: ".txt", write: writePlain},
	config.FormatMarkdown: {ext: ".md", write: writePlain},
	config.FormatHTML:     {ext: ".html", write: writeHTML},
	config.FormatDocx:     {ext: ".docx", write: writeDocx},
}

func writePlain(path, _, formatted string) error {
	return os.WriteFile(path, []byte(formatted), 0644)
}

func writeHTML(path, title, formatted string) error {
	page, err := markdownToHTML(title, formatted)
	if err != nil {
		return err
	}
	return os.WriteFile(path, page, 0644)
}

func writeDocx(path, _, formatted string) error {
	return markdownToDocx(formatted, path)
}

// Persist renders res, publishes it under a fresh name and mirrors it remotely when enabled.
func (s *implSink) Persist(ctx context.Context, res Result) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := DeriveName(res.Source, res.Timestamp)
	r := renderers[s.opts.Format]

	unlock := s.locks.lock(base)
	name, path, err := s.writeLocal(base, r, Format(res))
	unlock()
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{Name: name, LocalPath: path}
	s.logger.Info(ctx, "Summary written to %s", path)

	if s.store == nil {
		return receipt, nil
	}

	id, err := s.store.CreateDocument(ctx, name)
	if err != nil {
		return receipt, fmt.Errorf("create remote document %q: %w", name, err)
	}
	receipt.RemoteID = id

	// Docs rejects empty inserts; an empty transcript leaves an empty document.
	if text := RawText(res); text != "" {
		if err := s.store.InsertText(ctx, id, remoteStartOffset, text); err != nil {
			return receipt, fmt.Errorf("insert text into remote document %s: %w", id, err)
		}
	}
	s.logger.Info(ctx, "Summary written to remote document: %s (%s)", name, id)

	return receipt, nil
}

// writeLocal renders into a temp file and moves it onto the first free name.
// The name is claimed with O_EXCL so an existing summary is never replaced.
func (s *implSink) writeLocal(base string, r renderer, formatted string) (string, string, error) {
	tmp, err := os.CreateTemp(s.opts.Dir, ".summary-*.tmp")
	if err != nil {
		return "", "", &FileIOError{Op: "create", Path: s.opts.Dir, Err: err}
	}
	tmpPath := tmp.Name()
	tmp.Close()

	published := false
	defer func() {
		if !published {
			os.Remove(tmpPath)
		}
	}()

	if err := r.write(tmpPath, base, formatted); err != nil {
		return "", "", &FileIOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", "", &FileIOError{Op: "chmod", Path: tmpPath, Err: err}
	}

	for n := 1; n <= maxCollisions; n++ {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s (%d)", base, n)
		}
		path := filepath.Join(s.opts.Dir, name+r.ext)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", &FileIOError{Op: "create", Path: path, Err: err}
		}
		f.Close()

		if err := os.Rename(tmpPath, path); err != nil {
			os.Remove(path)
			return "", "", &FileIOError{Op: "rename", Path: path, Err: err}
		}
		published = true
		return name, path, nil
	}

	return "", "", &FileIOError{
		Op:   "create",
		Path: filepath.Join(s.opts.Dir, base+r.ext),
		Err:  fmt.Errorf("more than %d summaries share this name", maxCollisions),
	}
}
