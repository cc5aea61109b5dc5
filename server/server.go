// Package server lets spectators watch a local game over gRPC.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gridtris/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName = "gridtris.Spectator"
	watchMethod = "/" + serviceName + "/Watch"

	// frames buffered per spectator before new ones are dropped.
	subscriberBuffer = 10
)

// SpectatorServer is the server API of the spectator service.
type SpectatorServer interface {
	Watch(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SpectatorServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "gridtris/spectator",
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SpectatorServer).Watch(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// Register adds the spectator service backed by h to s.
func Register(s grpc.ServiceRegistrar, h *Hub) {
	s.RegisterService(&serviceDesc, h)
}

// Hub fans the frames of the local game out to every spectator. Publish never
// blocks: a spectator that falls behind misses frames.
type Hub struct {
	logger  *slog.Logger
	subs    map[string]chan *structpb.Struct
	session string
	last    *structpb.Struct
	over    bool
	mu      sync.Mutex
}

func NewHub(l *slog.Logger) *Hub {
	return &Hub{logger: l, subs: make(map[string]chan *structpb.Struct)}
}

// Publish sends s to every spectator. A frame following a game over starts a
// new session id.
func (h *Hub) Publish(s *tetris.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == "" || h.over {
		h.session = uuid.New().String()
		h.logger.Debug("new spectator session", slog.String("session", h.session))
	}
	msg, err := Encode(h.session, s)
	if err != nil {
		h.logger.Error("unable to publish frame", slog.String("error", err.Error()))
		return
	}
	h.last = msg
	h.over = s.GameOver

	for id, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			h.logger.Debug("spectator is behind, dropping frame", slog.String("spectator", id))
		}
	}
}

// Session is the id of the current game, empty before the first frame.
func (h *Hub) Session() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

// Spectators is the number of connected spectators.
func (h *Hub) Spectators() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe() (string, <-chan *structpb.Struct) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.New().String()
	ch := make(chan *structpb.Struct, subscriberBuffer)
	// late joiners see the board right away.
	if h.last != nil {
		ch <- h.last
	}
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Watch streams frames until the spectator goes away.
func (h *Hub) Watch(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	id, ch := h.subscribe()
	defer h.unsubscribe(id)
	h.logger.Info("spectator joined", slog.String("spectator", id))

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("spectator left", slog.String("spectator", id))
			return nil
		case msg := <-ch:
			if err := stream.Send(msg); err != nil {
				return fmt.Errorf("failed to send frame: %w", err)
			}
		}
	}
}

// Watcher receives the frames of a remote game.
type Watcher struct {
	stream grpc.ServerStreamingClient[structpb.Struct]
}

// Watch connects to the spectator service on conn.
func Watch(ctx context.Context, conn grpc.ClientConnInterface) (*Watcher, error) {
	stream, err := conn.NewStream(ctx, &serviceDesc.Streams[0], watchMethod)
	if err != nil {
		return nil, fmt.Errorf("unable to open watch stream: %w", err)
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, fmt.Errorf("unable to send watch request: %w", err)
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, fmt.Errorf("unable to close watch request: %w", err)
	}
	return &Watcher{stream: x}, nil
}

// Recv blocks until the next frame. It returns io.EOF when the game host
// closes the stream.
func (w *Watcher) Recv() (session string, s *tetris.Snapshot, err error) {
	msg, err := w.stream.Recv()
	if err != nil {
		return "", nil, err
	}
	return Decode(msg)
}
