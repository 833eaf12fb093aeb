package image_store

import "io"

// ImageStore accepts an uploaded image payload and hands back an opaque key
// that can later be turned into a public url. The service treats the store as
// a black box; user-facing rows only ever hold the url.
type ImageStore interface {
	Store(body io.Reader, ext string) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}
