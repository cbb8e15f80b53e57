package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/nixai/knowledge-assistant/internal/types"
)

// Wire shapes for the five backend endpoints. Field sets mirror exactly
// what the backend emits; anything extra is ignored on decode.

// LoginResponse is the raw /auth/login payload. The backend has shipped
// two layouts — identity nested under "user" and identity flat at the top
// level — so both are tolerated here and reconciled by the session layer.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type,omitempty"`
	User        *UserPayload `json:"user,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
	Email       string       `json:"email,omitempty"`
	Name        string       `json:"name,omitempty"`
}

// UserPayload is the nested identity layout inside LoginResponse.
type UserPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// UploadAck acknowledges that a document was accepted and queued for
// processing. It does not mean embedding is complete.
type UploadAck struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// AskResult carries the generated answer and its cited sources.
type AskResult struct {
	Answer  string         `json:"answer"`
	Sources []types.Source `json:"sources"`
}

type documentsResponse struct {
	Docs []types.DocumentSummary `json:"docs"`
}

type historyResponse struct {
	History []types.ChatTurn `json:"history"`
}

// errorBody is the structured payload the backend attaches to non-2xx
// responses.
type errorBody struct {
	Detail string `json:"detail"`
}

// errorDetail extracts the backend's detail message, falling back to the
// per-call generic phrase when the body is absent or unstructured.
func errorDetail(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return fallback
}

// Login authenticates with the backend. The login endpoint is the only
// one that takes a form-encoded body and the only one issued without a
// bearer token.
func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := g.send(req, "login", "Login failed")
	if err != nil {
		return nil, err
	}

	var lr LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, NewParseError("login", err)
	}
	return &lr, nil
}

// Upload submits a document as the multipart field "file". The backend
// only acknowledges queueing; processing happens in the background.
func (g *Gateway) Upload(ctx context.Context, token, filename string, r io.Reader) (*UploadAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := g.send(req, "upload", "Upload failed")
	if err != nil {
		return nil, err
	}

	var ack UploadAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, NewParseError("upload", err)
	}
	return &ack, nil
}

// Documents fetches the caller's document inventory. A missing docs field
// decodes as an empty slice, never nil for callers.
func (g *Gateway) Documents(ctx context.Context, token string) ([]types.DocumentSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/documents", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := g.send(req, "documents", "Failed to fetch documents")
	if err != nil {
		return nil, err
	}

	var dr documentsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, NewParseError("documents", err)
	}
	if dr.Docs == nil {
		dr.Docs = []types.DocumentSummary{}
	}
	return dr.Docs, nil
}

// Ask sends a question and returns the generated answer with sources.
// The question must already be validated and trimmed by the caller.
func (g *Gateway) Ask(ctx context.Context, token, question string) (*AskResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/ask", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := g.send(req, "ask", "Failed to get answer")
	if err != nil {
		return nil, err
	}

	var ar AskResult
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, NewParseError("ask", err)
	}
	return &ar, nil
}

// ChatHistory fetches the stored transcript for the authenticated user.
func (g *Gateway) ChatHistory(ctx context.Context, token string) ([]types.ChatTurn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/chat-history", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := g.send(req, "chat_history", "Failed to fetch history")
	if err != nil {
		return nil, err
	}

	var hr historyResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, NewParseError("chat_history", err)
	}
	if hr.History == nil {
		hr.History = []types.ChatTurn{}
	}
	return hr.History, nil
}
