// displaysink prints conversions published by unitconverter over UDP.
// Point the app at it with UNITCONV_DISPLAY_ADDR=127.0.0.1:2001.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"unitconverter"
	converterrpc "unitconverter/rpc"
)

func main() {
	addr := flag.String("listen", "127.0.0.1:2001", "UDP address to listen on")
	flag.Parse()

	laddr, err := net.ResolveUDPAddr("udp", *addr)
	if err != nil {
		log.Fatal(err)
	}
	receiver, err := net.ListenUDP("udp", laddr)
	if err != nil {
		log.Fatal(err)
	}
	defer receiver.Close()
	log.Printf("listening on %s", receiver.LocalAddr())

	buffers := make(map[string]*converterrpc.PacketBuffer)
	snapshots := make(map[string]*converterrpc.SnapshotAssembler)
	buf := make([]byte, 65535)
	for {
		n, from, err := receiver.ReadFromUDP(buf)
		if err != nil {
			log.Fatal(err)
		}
		pb, ok := buffers[from.String()]
		if !ok {
			pb = &converterrpc.PacketBuffer{}
			buffers[from.String()] = pb
		}
		pkts, err := pb.Feed(buf[:n])
		if err != nil {
			log.Printf("%s: %v", from, err)
			continue
		}
		for _, pkt := range pkts {
			if pkt.Kind() == converterrpc.KindSnapshot {
				sa, ok := snapshots[from.String()]
				if !ok {
					sa = converterrpc.NewSnapshotAssembler()
					snapshots[from.String()] = sa
				}
				recs, done, err := sa.Add(pkt)
				if err != nil {
					log.Printf("%s: %v", from, err)
					continue
				}
				if done {
					fmt.Printf("-- snapshot from %s (%d records)\n", from, len(recs))
					printRecords(recs)
				}
				continue
			}
			recs, err := converterrpc.Decode(pkt)
			if err != nil {
				log.Printf("%s: %v", from, err)
				continue
			}
			printRecords(recs)
		}
	}
}

func printRecords(recs []unitconverter.Record) {
	for _, rec := range recs {
		fmt.Printf("%s  %s\n", rec.CreatedAt.Format("15:04:05"), rec.Text)
	}
}
