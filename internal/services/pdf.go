package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/starwalkn/gotenberg-go-client/v8"
	"github.com/starwalkn/gotenberg-go-client/v8/document"
)

// PDFConverter turns office documents into PDF
type PDFConverter interface {
	ConvertToPDF(ctx context.Context, r io.Reader, filename string) (io.ReadCloser, error)
}

// PDFService converts uploads through a Gotenberg instance
type PDFService struct {
	client     *gotenberg.Client
	timeout    time.Duration
	maxRetries int
}

func NewPDFService(gotenbergURL string, timeoutStr string) (*PDFService, error) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
	}

	client, err := gotenberg.NewClient(gotenbergURL, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gotenberg client: %w", err)
	}

	return &PDFService{
		client:     client,
		timeout:    timeout,
		maxRetries: 3,
	}, nil
}

// ConvertToPDF sends the document to LibreOffice, retrying with a linear backoff
func (s *PDFService) ConvertToPDF(ctx context.Context, r io.Reader, filename string) (io.ReadCloser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		body, err := s.convertOnce(ctx, data, filename)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("failed to convert document after %d attempts: %w", s.maxRetries, lastErr)
}

func (s *PDFService) convertOnce(ctx context.Context, data []byte, filename string) (io.ReadCloser, error) {
	convertCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := document.FromReader(filename, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create document from reader: %w", err)
	}

	resp, err := s.client.Send(convertCtx, gotenberg.NewLibreOfficeRequest(doc))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The body has to be read before the per-attempt context is cancelled
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted document: %w", err)
	}
	return io.NopCloser(bytes.NewReader(pdf)), nil
}

func (s *PDFService) Close() error {
	return nil
}

var _ PDFConverter = (*PDFService)(nil)
