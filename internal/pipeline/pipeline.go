// Package pipeline sequences one feedtochat run: classify the URL, extract
// its text, assemble the prompt, copy to the clipboard, open the chat
// provider. Every step blocks; the first fatal error aborts the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"feedtochat/internal/classify"
	"feedtochat/internal/clipboard"
	"feedtochat/internal/config"
	"feedtochat/internal/dispatch"
	"feedtochat/internal/extract"
	"feedtochat/internal/prompt"
)

// Kind labels what the input URL was classified as.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
)

// ErrEmptyContent is returned when extraction succeeded but produced no
// usable text. There is nothing to summarize, so the run must not quietly
// open an empty chat.
var ErrEmptyContent = errors.New("extracted content is empty")

// Result describes a completed run.
type Result struct {
	URL         string
	Kind        Kind
	VideoID     string // set for videos only
	Provider    string
	ChatURL     string
	Chars       int  // size of the assembled message
	ClipboardOK bool // false means the clipboard step was skipped with a warning
}

// Pipeline wires the run's components. The function fields default to the
// real implementations and are replaced in tests.
type Pipeline struct {
	cfg *config.Config

	transcript func(ctx context.Context, videoID string) (string, error)
	article    func(ctx context.Context, pageURL string) (string, error)
	writeClip  func(text string) error
	launch     func(ctx context.Context, browserCmd, url string) error
}

// New builds a Pipeline backed by the real extractor, clipboard and browser
// launcher.
func New(cfg *config.Config) *Pipeline {
	ex := extract.New()
	return &Pipeline{
		cfg:        cfg,
		transcript: ex.Transcript,
		article:    ex.Article,
		writeClip:  clipboard.Write,
		launch:     dispatch.Launch,
	}
}

// Run executes the whole sequence for one URL. Clipboard failure is the only
// locally recovered condition; everything else aborts.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Result, error) {
	res := &Result{URL: rawURL, Provider: p.cfg.Provider}

	var content string
	if classify.IsVideoURL(rawURL) {
		res.Kind = KindVideo
		videoID, err := classify.ExtractVideoID(rawURL)
		if err != nil {
			return nil, err
		}
		res.VideoID = videoID

		slog.Info("fetching transcript", "video_id", videoID)
		content, err = p.transcript(ctx, videoID)
		if err != nil {
			return nil, err
		}
	} else {
		res.Kind = KindArticle

		slog.Info("extracting article", "url", rawURL)
		var err error
		content, err = p.article(ctx, rawURL)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, rawURL)
	}

	message := prompt.Assemble(prompt.Resolve(p.cfg.CustomPrompt), content)
	res.Chars = len(message)

	if err := p.writeClip(message); err != nil {
		slog.Warn("clipboard write failed, content will not be pre-copied", "error", err)
	} else {
		res.ClipboardOK = true
	}

	chatURL, err := dispatch.ProviderURL(p.cfg.Provider)
	if err != nil {
		return nil, err
	}
	res.ChatURL = chatURL

	slog.Info("opening chat provider", "provider", p.cfg.Provider, "url", chatURL)
	if err := p.launch(ctx, p.cfg.BrowserCmd, chatURL); err != nil {
		return nil, err
	}

	return res, nil
}
