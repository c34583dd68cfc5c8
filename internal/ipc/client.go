package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping checks daemon liveness.
func (c *Client) Ping() (*PingResponse, error) {
	var resp PingResponse
	if err := c.client.Call("Winpin.Ping", PingRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves daemon status and diagnostics.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Winpin.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh forces a synchronous enumeration pass.
func (c *Client) Refresh() (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.client.Call("Winpin.Refresh", RefreshRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Windows lists the most recently enumerated live windows.
func (c *Client) Windows() (*WindowsResponse, error) {
	var resp WindowsResponse
	if err := c.client.Call("Winpin.Windows", WindowsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns reconciled pins in stored order.
func (c *Client) List() (*ListResponse, error) {
	var resp ListResponse
	if err := c.client.Call("Winpin.List", ListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pin pins (or toggles off) the window with the given runtime ID.
func (c *Client) Pin(runtimeID string) (*PinResponse, error) {
	var resp PinResponse
	if err := c.client.Call("Winpin.Pin", PinRequest{RuntimeID: runtimeID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unpin removes a pin by its stable ID.
func (c *Client) Unpin(id string) error {
	var resp UnpinResponse
	return c.client.Call("Winpin.Unpin", UnpinRequest{ID: id}, &resp)
}

// Rename sets or clears a pin's custom name.
func (c *Client) Rename(id, name string) error {
	var resp RenameResponse
	return c.client.Call("Winpin.Rename", RenameRequest{ID: id, Name: name}, &resp)
}

// Move repositions a pin in stored order.
func (c *Client) Move(id string, position int) error {
	var resp MoveResponse
	return c.client.Call("Winpin.Move", MoveRequest{ID: id, Position: position}, &resp)
}

// Reassign rebinds a pin to a different live window.
func (c *Client) Reassign(id, runtimeID string) error {
	var resp ReassignResponse
	return c.client.Call("Winpin.Reassign", ReassignRequest{ID: id, RuntimeID: runtimeID}, &resp)
}

// Jump activates the live window bound to a pin.
func (c *Client) Jump(id string) error {
	var resp JumpResponse
	return c.client.Call("Winpin.Jump", JumpRequest{ID: id}, &resp)
}
