package fetch

import "context"

// GetJSON performs a GET against path and decodes the JSON response body
// into out.
func GetJSON(ctx context.Context, c *Client, path string, out any) error {
	resp, err := c.Get(path).Send(ctx)
	if err != nil {
		return err
	}
	return resp.JSON(out)
}

// PostJSON performs a POST with in serialized as the JSON body and decodes
// the JSON response body into out. Pass a nil out to ignore the response.
func PostJSON(ctx context.Context, c *Client, path string, in, out any) error {
	builder, err := c.Post(path).JSON(in)
	if err != nil {
		return err
	}
	resp, err := builder.Send(ctx)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

// UploadFile POSTs data as a multipart file part named "file" with the
// given filename and content type. Progress events are emitted when
// withProgress is set and the client has a notification sink.
func UploadFile(ctx context.Context, c *Client, path, filename, contentType string, data []byte, withProgress bool) (*Response, error) {
	form := NewForm().File("file", filename, contentType, data)
	return c.Post(path).
		Form(form).
		WithProgress(withProgress).
		Send(ctx)
}

// DownloadBytes performs a GET and returns the raw response body.
func DownloadBytes(ctx context.Context, c *Client, path string) ([]byte, error) {
	resp, err := c.Get(path).Send(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Bytes(), nil
}
