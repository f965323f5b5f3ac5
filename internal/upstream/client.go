package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"shiftdesk/config"
	"shiftdesk/internal/model"
	pkgerrors "shiftdesk/pkg/errors"
	"shiftdesk/pkg/requestid"
)

// ── 上游错误 ──

var (
	ErrUnauthorized     = pkgerrors.ErrUpstreamUnauthorized
	ErrUnexpectedStatus = errors.New("上游返回异常状态码")
	ErrDecode           = errors.New("上游响应解析失败")
)

// 响应体读取上限
const maxBodyBytes = 32 << 20

// envelopeKeys 列表被包在对象中时依次尝试的字段
var envelopeKeys = []string{"data", "items", "results", "records"}

// Client 上游排班 REST API 客户端
//
// 凭证由调用方逐次传入，客户端本身不保存任何令牌
type Client struct {
	baseURL       string
	employeesPath string
	shiftsPath    string
	timeout       time.Duration
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient 创建上游客户端；httpClient 为 nil 时使用 http.DefaultClient
func NewClient(cfg *config.UpstreamConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		employeesPath: cfg.EmployeesPath,
		shiftsPath:    cfg.ShiftsPath,
		timeout:       cfg.Timeout,
		httpClient:    httpClient,
		logger:        logger,
	}
}

// ListShifts 获取全部排班
func (c *Client) ListShifts(ctx context.Context, cred model.Credential) ([]model.ShiftRecord, error) {
	raws, err := c.fetchList(ctx, cred, c.shiftsPath)
	if err != nil {
		return nil, fmt.Errorf("获取排班列表失败: %w", err)
	}
	return model.DecodeShifts(raws), nil
}

// ListEmployees 获取全部员工
func (c *Client) ListEmployees(ctx context.Context, cred model.Credential) ([]model.EmployeeRecord, error) {
	raws, err := c.fetchList(ctx, cred, c.employeesPath)
	if err != nil {
		return nil, fmt.Errorf("获取员工列表失败: %w", err)
	}
	return model.DecodeEmployees(raws), nil
}

// client 为本次调用构造带 Bearer 头的 HTTP 客户端
func (c *Client) client(ctx context.Context, cred model.Credential) *http.Client {
	if cred.Token == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, ts)
}

func (c *Client) fetchList(ctx context.Context, cred model.Credential, path string) ([]map[string]any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rid := requestid.From(ctx); rid != "" {
		req.Header.Set(requestid.Header, rid)
	}

	start := time.Now()
	resp, err := c.client(ctx, cred).Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 失败: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	c.logger.Debug("上游请求完成",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, snippet(body))
	}

	return decodeList(body)
}

// decodeList 解析裸数组或 {"data": [...]} 形式的信封
func decodeList(body []byte) ([]map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []map[string]any{}, nil
	}

	if body[0] == '[' {
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return list, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	for _, key := range envelopeKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return []map[string]any{}, nil
		}
		return decodeList(raw)
	}
	return nil, fmt.Errorf("%w: 响应中没有列表字段", ErrDecode)
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
