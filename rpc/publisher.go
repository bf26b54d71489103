package converterrpc

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"unitconverter"
	convertermsgpack "unitconverter/msgpack"

	"github.com/google/uuid"
)

// Publisher pushes history to a display sink. Each packet goes out in a
// single Write, so a connected UDP socket sends one datagram per packet.
type Publisher struct {
	mutex sync.Mutex
	w     io.Writer
}

func NewPublisher(w io.Writer) *Publisher {
	return &Publisher{w: w}
}

// DialUDP returns a connected UDP socket suitable for NewPublisher.
func DialUDP(addr string) (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.DialUDP("udp", nil, raddr)
}

func (p *Publisher) PublishRecord(rec unitconverter.Record) error {
	payload, err := convertermsgpack.MarshalRecord(rec)
	if err != nil {
		return err
	}
	frame, err := newFrame(KindRecord, payload, nil)
	if err != nil {
		return err
	}
	return p.write(KindRecord, frame)
}

// PublishSnapshot sends the history as one or more snapshot pieces that
// share a group id; receivers rebuild it with a SnapshotAssembler.
func (p *Publisher) PublishSnapshot(recs []unitconverter.Record) error {
	chunks, err := convertermsgpack.SplitSnapshot(recs, maxSnapshotPayload)
	if err != nil {
		return err
	}
	group := []byte(uuid.New().String())
	total := []byte(strconv.Itoa(len(chunks)))
	frames := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		frame, err := newFrame(KindSnapshot, chunk, map[string][]byte{
			HeaderGroup: group,
			HeaderSeq:   []byte(strconv.Itoa(i)),
			HeaderTotal: total,
		})
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}
	return p.write(KindSnapshot, frames...)
}

// Hook publishes every record appended to a history log.
func (p *Publisher) Hook() unitconverter.HookFunc {
	return func(rec unitconverter.Record, _ *unitconverter.HistoryLog) error {
		return p.PublishRecord(rec)
	}
}

func newFrame(kind string, payload []byte, headers map[string][]byte) ([]byte, error) {
	h := map[string][]byte{
		HeaderKind: []byte(kind),
		HeaderID:   []byte(uuid.New().String()),
	}
	for k, v := range headers {
		h[k] = v
	}
	frame, err := EncodePacket(&Packet{
		H: h,
		B: map[string][]byte{
			BodyData: payload,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(frame) > maxFrame {
		return nil, fmt.Errorf("%s frame of %d bytes exceeds datagram limit", kind, len(frame))
	}
	return frame, nil
}

func (p *Publisher) write(kind string, frames ...[]byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, frame := range frames {
		if _, err := p.w.Write(frame); err != nil {
			return fmt.Errorf("publish %s: %w", kind, err)
		}
	}
	return nil
}

// Decode returns the records carried by pkt: one for a record packet, the
// piece's records for a snapshot packet.
func Decode(pkt *Packet) ([]unitconverter.Record, error) {
	payload, ok := pkt.B[BodyData]
	if !ok {
		return nil, fmt.Errorf("packet has no %s", BodyData)
	}
	switch pkt.Kind() {
	case KindRecord:
		rec, err := convertermsgpack.UnmarshalRecord(payload)
		if err != nil {
			return nil, err
		}
		return []unitconverter.Record{rec}, nil
	case KindSnapshot:
		return convertermsgpack.UnmarshalSnapshot(payload)
	default:
		return nil, fmt.Errorf("unknown packet kind %q", pkt.Kind())
	}
}
