package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestArticle_DumpToolPreferred(t *testing.T) {
	runner := &fakeRunner{
		paths:  map[string]string{"lynx": "/usr/bin/lynx"},
		output: []byte("rendered article text"),
	}
	e := newTestExtractor(runner)

	got, err := e.Article(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Article() unexpected error: %v", err)
	}
	if got != "rendered article text" {
		t.Errorf("Article() = %q, want dump tool output", got)
	}
	if runner.gotName != "/usr/bin/lynx" {
		t.Errorf("invoked %q, want lynx", runner.gotName)
	}
	want := []string{"-dump", "-nolist", "https://example.com/post"}
	if len(runner.gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", runner.gotArgs, want)
	}
	for i := range want {
		if runner.gotArgs[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, runner.gotArgs[i], want[i])
		}
	}
}

func TestArticle_SecondDumpToolWhenFirstAbsent(t *testing.T) {
	runner := &fakeRunner{
		paths:  map[string]string{"w3m": "/usr/bin/w3m"},
		output: []byte("w3m output"),
	}
	e := newTestExtractor(runner)

	got, err := e.Article(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Article() unexpected error: %v", err)
	}
	if got != "w3m output" {
		t.Errorf("Article() = %q, want w3m output", got)
	}
	if runner.gotName != "/usr/bin/w3m" {
		t.Errorf("invoked %q, want w3m", runner.gotName)
	}
}

func TestArticle_DumpToolFailureIsFatal(t *testing.T) {
	// A tool that exists but errors must not fall through to the native
	// fetch; the user should see the tool's failure.
	runner := &fakeRunner{
		paths: map[string]string{"lynx": "/usr/bin/lynx"},
		err:   errors.New("exit status 2"),
	}
	e := newTestExtractor(runner)

	_, err := e.Article(context.Background(), "https://example.com/post")
	if err == nil {
		t.Fatal("Article() with failing dump tool: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "lynx") {
		t.Errorf("error %q does not name the failing tool", err)
	}
}

func TestRawFetch(t *testing.T) {
	const page = `<html><head><style>body { color: red }</style></head>
<body><h1>Title</h1>

<p>First paragraph.</p>
<script>var ignored = 1;</script>
<p>Second <b>paragraph</b>.</p></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := New()
	got, err := e.rawFetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("rawFetch() unexpected error: %v", err)
	}

	for _, want := range []string{"Title", "First paragraph.", "paragraph"} {
		if !strings.Contains(got, want) {
			t.Errorf("rawFetch() output missing %q:\n%s", want, got)
		}
	}
	for _, reject := range []string{"<", "color: red", "var ignored"} {
		if strings.Contains(got, reject) {
			t.Errorf("rawFetch() output contains %q, want it stripped:\n%s", reject, got)
		}
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("rawFetch() output contains blank lines:\n%s", got)
	}
}

func TestRawFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := New()
	if _, err := e.rawFetch(context.Background(), srv.URL); err == nil {
		t.Fatal("rawFetch() on 404: expected error, got nil")
	}
}

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tags removed",
			in:   "<p>one</p><p>two</p>",
			want: "one\ntwo\n",
		},
		{
			name: "blank text nodes dropped",
			in:   "<div>  \n </div><div>kept</div>",
			want: "kept\n",
		},
		{
			name: "script and style bodies skipped",
			in:   "<style>s{}</style><script>f()</script><p>visible</p>",
			want: "visible\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flattenHTML(tt.in); got != tt.want {
				t.Errorf("flattenHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDropBlankLines(t *testing.T) {
	in := "one\n\n   \ntwo\n\t\nthree\n"
	want := "one\ntwo\nthree\n"
	if got := dropBlankLines(in); got != want {
		t.Errorf("dropBlankLines(%q) = %q, want %q", in, got, want)
	}
}
