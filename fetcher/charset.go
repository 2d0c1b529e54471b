package fetcher

import (
	"fmt"
	"mime"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// htmlBody returns the page body as UTF-8. colly only converts bodies whose
// Content-Type header names a charset, so pages that declare it in a <meta>
// tag or a BOM are converted here. A body that is already valid UTF-8 is
// left alone; that also covers pure ASCII.
func htmlBody(resp *Response) ([]byte, error) {
	if _, params, err := mime.ParseMediaType(resp.ContentType); err == nil && params["charset"] != "" {
		return resp.Body, nil
	}
	if utf8.Valid(resp.Body) {
		return resp.Body, nil
	}

	enc, name, _ := charset.DetermineEncoding(resp.Body, "text/html")
	body, err := enc.NewDecoder().Bytes(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s body: %w", name, err)
	}
	return body, nil
}
