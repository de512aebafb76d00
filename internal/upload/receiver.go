package upload

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MaxFileSize is the ceiling on a single uploaded file (1 MiB).
const MaxFileSize = 1 << 20

const fileContextKey = "upload.file"

// File describes a received upload sitting in the temp directory.
type File struct {
	// Path is the temp location the file was written to.
	Path string
	// Filename is the generated name, <uuid>_<original-name>.
	Filename string
}

// Receive returns middleware that accepts an optional multipart file under
// the given field name. The file is written to dir under a unique name and
// exposed to the handler via FromContext. Once the handler returns, any file
// still sitting at the temp path is removed; handlers that want to keep the
// upload move it out with os.Rename first.
func Receive(dir, field string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header, err := c.FormFile(field)
			if err != nil {
				// no file part; the route decides whether that is a problem
				return next(c)
			}
			if header.Size > MaxFileSize {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
			}

			src, err := header.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "error")
			}
			defer src.Close()

			name := uuid.New().String() + "_" + filepath.Base(header.Filename)
			path := filepath.Join(dir, name)
			dst, err := os.Create(path)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "error")
			}
			if _, err := io.Copy(dst, src); err != nil {
				dst.Close()
				os.Remove(path)
				return echo.NewHTTPError(http.StatusInternalServerError, "error")
			}
			if err := dst.Close(); err != nil {
				os.Remove(path)
				return echo.NewHTTPError(http.StatusInternalServerError, "error")
			}

			c.Set(fileContextKey, &File{Path: path, Filename: name})
			err = next(c)
			if _, statErr := os.Stat(path); statErr == nil {
				os.Remove(path)
			}
			return err
		}
	}
}

// FromContext returns the received file, or nil when the request carried none.
func FromContext(c echo.Context) *File {
	f, _ := c.Get(fileContextKey).(*File)
	return f
}
