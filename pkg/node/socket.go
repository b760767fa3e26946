package node

import (
	"reflect"

	"github.com/anshdavid/computegraph/pkg/identifier"
	"github.com/anshdavid/computegraph/pkg/logging"
)

// Direction is a Socket's data-flow direction within its owning Node.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Socket is a connection point on a Node: it binds to one DataInterface
// and wires to zero or more peer Sockets, usually on other Nodes. Output
// sockets push their bound interface's value to connected peers on
// Propagate; any socket accepts a peer's pushed value through UpdateValue.
type Socket struct {
	id          identifier.Identifier
	direction   Direction
	iface       *DataInterface
	connections map[*Socket]struct{}
	logger      *logging.Logger
	onPropagate func(peerName string)
}

func newSocket(name, uid string, direction Direction, logger *logging.Logger, onPropagate func(string)) *Socket {
	return &Socket{
		id:          identifier.New(name, uid),
		direction:   direction,
		connections: make(map[*Socket]struct{}),
		logger:      logger,
		onPropagate: onPropagate,
	}
}

// Name returns the socket's name.
func (s *Socket) Name() string { return s.id.Name() }

// UID returns the socket's uid.
func (s *Socket) UID() string { return s.id.UID() }

// Direction returns whether this is an input or output socket.
func (s *Socket) Direction() Direction { return s.direction }

// Connections returns the currently connected peer sockets.
func (s *Socket) Connections() []*Socket {
	peers := make([]*Socket, 0, len(s.connections))
	for p := range s.connections {
		peers = append(peers, p)
	}
	return peers
}

// SetDataInterface binds this socket to a DataInterface.
func (s *Socket) SetDataInterface(iface *DataInterface) { s.iface = iface }

// GetValue returns the bound interface's current value, or nil if no
// interface is bound.
func (s *Socket) GetValue() any {
	if s.iface == nil {
		return nil
	}
	return s.iface.Get()
}

// Connect wires peer into this socket's connection set — a no-op if
// already connected — then immediately propagates the current value to
// it, so a newly wired peer picks up live state rather than waiting for
// the next change.
func (s *Socket) Connect(peer *Socket) {
	if _, ok := s.connections[peer]; ok {
		return
	}
	s.connections[peer] = struct{}{}
	s.Propagate()
}

// Disconnect removes peer from this socket's connection set.
func (s *Socket) Disconnect(peer *Socket) {
	delete(s.connections, peer)
}

// Propagate pushes this socket's bound value to every connected peer.
// A socket with no bound interface propagates nothing.
func (s *Socket) Propagate() {
	if s.iface == nil {
		return
	}
	value := s.iface.Get()
	for peer := range s.connections {
		peer.UpdateValue(value)
		if s.onPropagate != nil {
			s.onPropagate(peer.Name())
		}
	}
}

// UpdateValue is the propagation endpoint a connected peer (or a Node
// driving this socket directly) calls to push a value in. It is a no-op
// when this socket has no bound interface, and a no-op when the bound
// interface's current value already equals value — the equality
// short-circuit that gives reactive cycles a termination guarantee.
func (s *Socket) UpdateValue(value any) {
	if s.iface == nil {
		if s.logger != nil {
			s.logger.Debugf("socket %q has no data interface", s.Name())
		}
		return
	}
	if reflect.DeepEqual(s.iface.Get(), value) {
		return
	}
	s.iface.Update(value)
}
