package convertermsgpack

import (
	"time"
	"unitconverter"

	"github.com/vmihailenco/msgpack/v5"
)

type Record struct {
	UUID       string  `msgpack:"uuid,omitempty"`
	Category   string  `msgpack:"category,omitempty"`
	SourceUnit string  `msgpack:"source_unit,omitempty"`
	DestUnit   string  `msgpack:"dest_unit,omitempty"`
	Value      float64 `msgpack:"value"`
	Result     float64 `msgpack:"result"`
	Text       string  `msgpack:"text,omitempty"`
	DatetimeMs int64   `msgpack:"date,omitempty"`
}

type Snapshot struct {
	Records    []Record `msgpack:"records,omitempty"`
	DatetimeMs int64    `msgpack:"date,omitempty"`
}

func NewRecord(rec unitconverter.Record) Record {
	return Record{
		UUID:       rec.ID,
		Category:   string(rec.Request.Category),
		SourceUnit: string(rec.Request.SourceUnit),
		DestUnit:   string(rec.Request.DestUnit),
		Value:      rec.Request.Value,
		Result:     rec.Result,
		Text:       rec.Text,
		DatetimeMs: rec.CreatedAt.UnixMilli(),
	}
}

// ToRecord converts back; CreatedAt keeps millisecond precision only.
func ToRecord(r *Record) unitconverter.Record {
	return unitconverter.Record{
		ID: r.UUID,
		Request: unitconverter.ConversionRequest{
			Category:   unitconverter.Category(r.Category),
			SourceUnit: unitconverter.Unit(r.SourceUnit),
			DestUnit:   unitconverter.Unit(r.DestUnit),
			Value:      r.Value,
		},
		Result:    r.Result,
		Text:      r.Text,
		CreatedAt: time.UnixMilli(r.DatetimeMs),
	}
}

func NewSnapshot(recs []unitconverter.Record) Snapshot {
	s := Snapshot{
		Records:    make([]Record, 0, len(recs)),
		DatetimeMs: time.Now().UnixMilli(),
	}
	for _, rec := range recs {
		s.Records = append(s.Records, NewRecord(rec))
	}
	return s
}

func ToRecords(s *Snapshot) []unitconverter.Record {
	recs := make([]unitconverter.Record, 0, len(s.Records))
	for i := range s.Records {
		recs = append(recs, ToRecord(&s.Records[i]))
	}
	return recs
}

func MarshalRecord(rec unitconverter.Record) ([]byte, error) {
	r := NewRecord(rec)
	return msgpack.Marshal(&r)
}

func UnmarshalRecord(data []byte) (unitconverter.Record, error) {
	var r Record
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return unitconverter.Record{}, err
	}
	return ToRecord(&r), nil
}

func MarshalSnapshot(recs []unitconverter.Record) ([]byte, error) {
	s := NewSnapshot(recs)
	return msgpack.Marshal(&s)
}

// snapshotOverhead covers the snapshot map, its keys, the array header and
// the timestamp around the encoded records.
const snapshotOverhead = 32

// SplitSnapshot encodes recs as consecutive snapshots of at most limit bytes
// each, keeping record order. A single record larger than limit still gets
// its own snapshot. An empty history yields one empty snapshot.
func SplitSnapshot(recs []unitconverter.Record, limit int) ([][]byte, error) {
	var (
		chunks [][]byte
		cur    []Record
		size   = snapshotOverhead
		now    = time.Now().UnixMilli()
	)
	flush := func() error {
		data, err := msgpack.Marshal(&Snapshot{Records: cur, DatetimeMs: now})
		if err != nil {
			return err
		}
		chunks = append(chunks, data)
		cur = nil
		size = snapshotOverhead
		return nil
	}

	for _, rec := range recs {
		r := NewRecord(rec)
		b, err := msgpack.Marshal(&r)
		if err != nil {
			return nil, err
		}
		if len(cur) > 0 && size+len(b) > limit {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		cur = append(cur, r)
		size += len(b)
	}
	if len(cur) > 0 || len(chunks) == 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return chunks, nil
}

func UnmarshalSnapshot(data []byte) ([]unitconverter.Record, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return ToRecords(&s), nil
}
