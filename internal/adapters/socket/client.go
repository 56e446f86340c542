package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client connects to the flashtext daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Extract sends an extract request and returns the matches.
func (c *Client) Extract(text string) (*ExtractResult, error) {
	var result ExtractResult
	if err := c.invoke(MethodExtract, ExtractParams{Text: text}, &result, 30*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Replace sends a replace request and returns the rewritten text.
func (c *Client) Replace(text string) (*ReplaceResult, error) {
	var result ReplaceResult
	if err := c.invoke(MethodReplace, ReplaceParams{Text: text}, &result, 30*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.invoke(MethodHealth, nil, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats sends a stats request.
func (c *Client) Stats() (*StatsResult, error) {
	var result StatsResult
	if err := c.invoke(MethodStats, nil, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reload asks the daemon to rebuild its processor from vocabulary files and
// stored sets, with an extended timeout for large vocabularies.
func (c *Client) Reload() (*ReloadResult, error) {
	var result ReloadResult
	if err := c.invoke(MethodReload, nil, &result, 120*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	_, err := c.call(Request{
		ID:     "1",
		Method: MethodShutdown,
	})
	return err
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (c *Client) invoke(method string, params interface{}, out interface{}, timeout time.Duration) error {
	resp, err := c.callWithTimeout(Request{
		ID:     "1",
		Method: method,
		Params: params,
	}, timeout)
	if err != nil {
		return err
	}
	if err := decodeInto(resp.Result, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

func (c *Client) call(req Request) (*Response, error) {
	return c.callWithTimeout(req, 5*time.Second)
}

func (c *Client) callWithTimeout(req Request, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Set deadline for the whole request/response
	conn.SetDeadline(time.Now().Add(timeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxMessage)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	return &resp, nil
}
