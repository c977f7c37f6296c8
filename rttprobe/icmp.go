// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rttprobe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// ErrNoReply is returned when a probe is not answered in time.
var ErrNoReply = errors.New("no echo reply")

// An ICMPPinger sends ICMP echo requests.
//
// By default it uses unprivileged datagram ICMP sockets, which Linux
// allows for the groups listed in net.ipv4.ping_group_range. Raw
// sockets, which need elevated privileges, are used if Privileged is
// set.
type ICMPPinger struct {
	Privileged bool

	seq uint32
}

var echoData = []byte("rttprobe")

// Ping implements Pinger.
func (p *ICMPPinger) Ping(ctx context.Context, host string, timeout time.Duration) (time.Duration, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return 0, err
	}
	if len(ips) == 0 {
		return 0, fmt.Errorf("%s: no addresses", host)
	}
	ip := ips[0]
	v4 := ip.IP.To4() != nil

	var (
		network, laddr string
		echo, reply    icmp.Type
		proto          int
	)
	if v4 {
		network, laddr = "udp4", "0.0.0.0"
		if p.Privileged {
			network = "ip4:icmp"
		}
		echo, reply = ipv4.ICMPTypeEcho, ipv4.ICMPTypeEchoReply
		proto = ipv4.ICMPTypeEcho.Protocol()
	} else {
		network, laddr = "udp6", "::"
		if p.Privileged {
			network = "ip6:ipv6-icmp"
		}
		echo, reply = ipv6.ICMPTypeEchoRequest, ipv6.ICMPTypeEchoReply
		proto = ipv6.ICMPTypeEchoRequest.Protocol()
	}

	c, err := icmp.ListenPacket(network, laddr)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	var dst net.Addr = &net.IPAddr{IP: ip.IP, Zone: ip.Zone}
	if !p.Privileged {
		dst = &net.UDPAddr{IP: ip.IP, Zone: ip.Zone}
	}

	// Unprivileged sockets have their echo identifier rewritten by
	// the kernel, so only the sequence number identifies a reply.
	id := os.Getpid() & 0xffff
	seq := int(atomic.AddUint32(&p.seq, 1) & 0xffff)
	msg := icmp.Message{
		Type: echo,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: echoData},
	}
	wb, err := msg.Marshal(nil)
	if err != nil {
		return 0, err
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.SetDeadline(deadline); err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := c.WriteTo(wb, dst); err != nil {
		return 0, err
	}
	rb := make([]byte, 1500)
	for {
		n, _, err := c.ReadFrom(rb)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return 0, fmt.Errorf("%s: %w", host, ErrNoReply)
			}
			return 0, err
		}
		rm, err := icmp.ParseMessage(proto, rb[:n])
		if err != nil || rm.Type != reply {
			continue
		}
		body, ok := rm.Body.(*icmp.Echo)
		if !ok || body.Seq != seq || (p.Privileged && body.ID != id) {
			continue
		}
		return time.Since(start), nil
	}
}
