package converterrpc

import (
	"fmt"
	"strconv"
	"unitconverter"
)

const (
	// maxPieces bounds the total a sender may announce for one snapshot.
	maxPieces = 1 << 16
	// maxPendingGroups bounds snapshots still missing pieces; the oldest is
	// dropped first, since UDP may lose pieces for good.
	maxPendingGroups = 8
)

type pendingSnapshot struct {
	pieces   [][]unitconverter.Record
	received []bool
	got      int
}

// SnapshotAssembler rebuilds snapshots published in several pieces.
// Pieces may arrive in any order; duplicates are ignored.
type SnapshotAssembler struct {
	pending map[string]*pendingSnapshot
	order   []string
}

func NewSnapshotAssembler() *SnapshotAssembler {
	return &SnapshotAssembler{pending: make(map[string]*pendingSnapshot)}
}

// Add feeds one snapshot packet. It returns the whole history, oldest
// first, once the last missing piece of its group has arrived.
func (a *SnapshotAssembler) Add(pkt *Packet) ([]unitconverter.Record, bool, error) {
	if pkt.Kind() != KindSnapshot {
		return nil, false, fmt.Errorf("not a snapshot packet: %q", pkt.Kind())
	}
	recs, err := Decode(pkt)
	if err != nil {
		return nil, false, err
	}

	group := string(pkt.H[HeaderGroup])
	if group == "" {
		return recs, true, nil
	}
	seq, err := strconv.Atoi(string(pkt.H[HeaderSeq]))
	if err != nil {
		return nil, false, fmt.Errorf("snapshot seq: %w", err)
	}
	total, err := strconv.Atoi(string(pkt.H[HeaderTotal]))
	if err != nil {
		return nil, false, fmt.Errorf("snapshot total: %w", err)
	}
	if total < 1 || total > maxPieces || seq < 0 || seq >= total {
		return nil, false, fmt.Errorf("snapshot piece %d of %d out of range", seq, total)
	}

	p, ok := a.pending[group]
	if !ok {
		p = &pendingSnapshot{
			pieces:   make([][]unitconverter.Record, total),
			received: make([]bool, total),
		}
		a.track(group, p)
	} else if len(p.pieces) != total {
		return nil, false, fmt.Errorf("snapshot %s: total changed from %d to %d", group, len(p.pieces), total)
	}
	if p.received[seq] {
		return nil, false, nil
	}
	p.pieces[seq] = recs
	p.received[seq] = true
	p.got++
	if p.got < total {
		return nil, false, nil
	}

	a.forget(group)
	var all []unitconverter.Record
	for _, piece := range p.pieces {
		all = append(all, piece...)
	}
	return all, true, nil
}

// Pending is the number of snapshots still missing pieces.
func (a *SnapshotAssembler) Pending() int {
	return len(a.pending)
}

func (a *SnapshotAssembler) track(group string, p *pendingSnapshot) {
	if len(a.order) >= maxPendingGroups {
		a.forget(a.order[0])
	}
	a.pending[group] = p
	a.order = append(a.order, group)
}

func (a *SnapshotAssembler) forget(group string) {
	delete(a.pending, group)
	for i, g := range a.order {
		if g == group {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}
