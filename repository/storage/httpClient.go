package storagerepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Aashutosh1201/rentall-web-sub001/util/httpx"
)

type httpRepo struct {
	uploadURL  string
	apiKey     string
	rootFolder string
	client     *http.Client
}

func NewHTTP(uploadURL, apiKey, rootFolder string) Repo {
	return &httpRepo{uploadURL: uploadURL, apiKey: apiKey, rootFolder: rootFolder, client: httpx.Client()}
}

func (r *httpRepo) UploadImage(ctx context.Context, folder, filename string, data io.Reader) (*UploadResult, error) {
	if !AllowedImage(filename) {
		return nil, errors.New("only jpg, jpeg and png files are accepted")
	}
	if folder == "" {
		folder = r.rootFolder
	}

	// An allowed extension is not enough; sniff the leading bytes too.
	head := make([]byte, 512)
	n, err := io.ReadFull(data, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]
	switch http.DetectContentType(head) {
	case "image/jpeg", "image/png":
	default:
		return nil, errors.New("file content is not a jpeg or png image")
	}
	data = io.MultiReader(bytes.NewReader(head), data)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("folder", folder); err != nil {
		return nil, err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.uploadURL, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storage upload failed: %s", resp.Status)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.SecureURL == "" {
		return nil, errors.New("storage: empty asset url")
	}
	return &UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}
