// Package static serves the public asset tree, the /src source tree and the
// entry document for every path nothing else claims.
package static

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/utafrali/storefront/pkg/logger"
)

// SrcPrefix is the URL prefix mapped onto the source directory.
const SrcPrefix = "/src"

// Server resolves a request path to a file under the public or source root and
// falls back to the entry document.
type Server struct {
	public    http.FileSystem
	src       http.FileSystem
	entryPath string
	logger    *slog.Logger
}

// New creates a Server. The entry document is a file name relative to
// publicDir and must exist. An empty srcDir disables the /src mapping.
func New(publicDir, srcDir, entry string, log *slog.Logger) (*Server, error) {
	entryPath := filepath.Join(publicDir, filepath.FromSlash(entry))
	info, err := os.Stat(entryPath)
	if err != nil {
		return nil, fmt.Errorf("stat entry document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("entry document %s is a directory", entryPath)
	}

	s := &Server{
		public:    http.Dir(publicDir),
		entryPath: entryPath,
		logger:    log,
	}
	if srcDir != "" {
		s.src = http.Dir(srcDir)
	}
	return s, nil
}

// ServeHTTP serves GET and HEAD. The public root is tried first, then the
// source root for /src paths, then the entry document with status 200.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := path.Clean("/" + r.URL.Path)

	if s.serveFile(w, r, s.public, name) {
		return
	}
	if rest, ok := srcPath(name); ok && s.src != nil {
		if s.serveFile(w, r, s.src, rest) {
			return
		}
	}
	s.serveEntry(w, r)
}

func srcPath(name string) (string, bool) {
	if name == SrcPrefix {
		return "/", true
	}
	if strings.HasPrefix(name, SrcPrefix+"/") {
		return strings.TrimPrefix(name, SrcPrefix), true
	}
	return "", false
}

// serveFile writes name from fsys and reports whether it did. Directories and
// missing files are not served.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

func (s *Server) serveEntry(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.entryPath)
	if err != nil {
		s.log(r).ErrorContext(r.Context(), "failed to open entry document",
			slog.String("path", s.entryPath),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) log(r *http.Request) *slog.Logger {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && s.logger != nil {
		return s.logger
	}
	return l
}
