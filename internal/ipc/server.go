package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"winpin/internal/daemon"
	"winpin/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName("Winpin", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
		)
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) Ping(_ PingRequest, resp *PingResponse) error {
	resp.PID = os.Getpid()
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.PID = status.PID
	resp.LastRefresh = status.LastRefresh
	resp.LastError = status.LastError
	resp.LockPath = status.LockPath
	resp.DBPath = status.DBPath
	resp.Diagnostics = status.Diagnostics
	return nil
}

func (s *service) Refresh(_ RefreshRequest, resp *RefreshResponse) error {
	if err := s.daemon.RefreshNow(s.ctx); err != nil {
		return err
	}
	resp.Diagnostics = s.daemon.Manager().Diagnostics()
	return nil
}

func (s *service) Windows(_ WindowsRequest, resp *WindowsResponse) error {
	resp.Windows = s.daemon.Manager().Windows()
	return nil
}

func (s *service) List(_ ListRequest, resp *ListResponse) error {
	resp.Items = s.daemon.Manager().Items()
	return nil
}

func (s *service) Pin(req PinRequest, resp *PinResponse) error {
	item, pinned, err := s.daemon.Manager().Pin(s.ctx, req.RuntimeID)
	if err != nil {
		return err
	}
	resp.Item = item
	resp.Pinned = pinned
	return nil
}

func (s *service) Unpin(req UnpinRequest, _ *UnpinResponse) error {
	return s.daemon.Manager().Unpin(s.ctx, req.ID)
}

func (s *service) Rename(req RenameRequest, _ *RenameResponse) error {
	return s.daemon.Manager().Rename(s.ctx, req.ID, req.Name)
}

func (s *service) Move(req MoveRequest, _ *MoveResponse) error {
	return s.daemon.Manager().Move(s.ctx, req.ID, req.Position)
}

func (s *service) Reassign(req ReassignRequest, _ *ReassignResponse) error {
	return s.daemon.Manager().Reassign(s.ctx, req.ID, req.RuntimeID)
}

func (s *service) Jump(req JumpRequest, _ *JumpResponse) error {
	return s.daemon.Activate(s.ctx, req.ID)
}
