package httpclient

import "strings"

// JoinURL joins a base URL and a resource path with exactly one slash
// between them, whatever slashes either side carries. A path that is already
// an absolute http(s) URL, such as an href returned by the server, is used
// as is.
func JoinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
