package speedtest

import (
	"context"
	"fmt"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
)

// NetBackend negotiates against speedtest.net.
type NetBackend struct {
	client *speedtest.Speedtest
}

// NewNetBackend creates the production speedtest.net backend.
func NewNetBackend() *NetBackend {
	return &NetBackend{client: speedtest.New()}
}

// BestServer fetches the server list and picks the closest server, then
// ping-tests it so latency is populated before measurement starts.
func (b *NetBackend) BestServer(ctx context.Context) (Server, error) {
	servers, err := b.client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching server list: %w", err)
	}
	targets, err := servers.FindServer(nil)
	if err != nil {
		return nil, fmt.Errorf("selecting server: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no measurement server available")
	}

	srv := targets[0]
	if err := srv.PingTestContext(ctx, func(time.Duration) {}); err != nil {
		return nil, fmt.Errorf("ping test: %w", err)
	}
	return &netServer{srv: srv}, nil
}

// netServer adapts a speedtest.net server to the Server interface.
type netServer struct {
	srv *speedtest.Server
}

func (s *netServer) Name() string {
	return s.srv.Name
}

func (s *netServer) PingMillis() float64 {
	return float64(s.srv.Latency) / float64(time.Millisecond)
}

func (s *netServer) Download(ctx context.Context) (float64, error) {
	if err := s.srv.DownloadTestContext(ctx); err != nil {
		return 0, err
	}
	// DLSpeed is a byte rate; the report wants bits per second.
	return float64(s.srv.DLSpeed) * 8, nil
}

func (s *netServer) Upload(ctx context.Context) (float64, error) {
	if err := s.srv.UploadTestContext(ctx); err != nil {
		return 0, err
	}
	return float64(s.srv.ULSpeed) * 8, nil
}
