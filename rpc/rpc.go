package converterrpc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	HeaderKind  = "kind"
	HeaderID    = "id"
	HeaderGroup = "group"
	HeaderSeq   = "seq"
	HeaderTotal = "total"
	BodyData    = "payload"

	KindRecord   = "record"
	KindSnapshot = "snapshot"
)

// maxFrame is the largest UDP payload over IPv4. Every frame must fit in a
// single datagram.
const maxFrame = 65507

// maxSnapshotPayload leaves room in a frame for the length prefix and the
// packet headers around a snapshot piece.
const maxSnapshotPayload = 60 * 1024

type Packet struct {
	H map[string][]byte `msgpack:"h,omitempty"`
	B map[string][]byte `msgpack:"b,omitempty"`
}

func (p *Packet) Kind() string {
	return string(p.H[HeaderKind])
}

// EncodePacket frames a packet as a little-endian uint32 length followed
// by its msgpack encoding.
func EncodePacket(pkt *Packet) ([]byte, error) {
	body, err := msgpack.Marshal(pkt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes(), nil
}

// PacketBuffer reassembles frames that arrive split across reads.
type PacketBuffer struct {
	buf bytes.Buffer
}

func (pb *PacketBuffer) Feed(data []byte) ([]*Packet, error) {
	pb.buf.Write(data)

	var results []*Packet
	for {
		if pb.buf.Len() < 4 {
			break
		}
		length := binary.LittleEndian.Uint32(pb.buf.Bytes()[:4])
		if length > maxFrame {
			pb.buf.Reset()
			return results, fmt.Errorf("frame of %d bytes exceeds limit", length)
		}
		if pb.buf.Len() < int(4+length) {
			// not enough data yet
			break
		}
		pb.buf.Next(4)
		body := pb.buf.Next(int(length))

		v := new(Packet)
		if err := msgpack.Unmarshal(body, v); err != nil {
			return results, fmt.Errorf("decode packet: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func (pb *PacketBuffer) Buffered() int {
	return pb.buf.Len()
}
