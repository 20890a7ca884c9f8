package ocdproto

import (
	"context"
	"testing"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/crc"
	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
	"github.com/stretchr/testify/require"
)

// fakeDevice answers every well-formed frame on deviceEnd with a reply
// that echoes the frame's type byte and address, so the test can focus on
// the Link's framing and retry behavior rather than emulating an 8051.
func fakeDevice(t *testing.T, deviceEnd *transport.Loopback, stop <-chan struct{}) {
	t.Helper()
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			req, err := deviceEnd.ReadExact(FrameLen, 50*time.Millisecond)
			if err != nil || !verifyReply(req) {
				continue
			}
			reply := make([]byte, FrameLen)
			copy(reply, req)
			hi, lo := crc.CCITT(reply[:FrameLen-2])
			reply[FrameLen-2], reply[FrameLen-1] = hi, lo
			_ = deviceEnd.Write(reply)
		}
	}()
}

func TestLinkResetReturnsOnValidReply(t *testing.T) {
	hostEnd, deviceEnd := transport.NewLoopbackPair()
	stop := make(chan struct{})
	defer close(stop)
	fakeDevice(t, deviceEnd, stop)

	link := NewLink(hostEnd, nil)
	link.Timeout = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, link.Reset(ctx))
}

func TestLinkReadStatusParsesFields(t *testing.T) {
	hostEnd, deviceEnd := transport.NewLoopbackPair()
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			req, err := deviceEnd.ReadExact(FrameLen, 50*time.Millisecond)
			if err != nil || !verifyReply(req) {
				continue
			}
			reply := make([]byte, FrameLen)
			copy(reply, req)
			reply[4], reply[5] = 0x00, 0x07 // debug_counter=3, stall=1
			reply[6], reply[7] = 0x00, 0x2A // timer_counter=42
			reply[8], reply[9] = 0x12, 0x34 // PC=0x1234
			hi, lo := crc.CCITT(reply[:FrameLen-2])
			reply[FrameLen-2], reply[FrameLen-1] = hi, lo
			_ = deviceEnd.Write(reply)
		}
	}()

	link := NewLink(hostEnd, nil)
	link.Timeout = 200 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := link.ReadStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Stalled)
	require.EqualValues(t, 3, status.DebugCounter)
	require.EqualValues(t, 42, status.TimerCounter)
	require.EqualValues(t, 0x1234, status.ProgramCounter)
}

func TestLinkCodeWrite128SendsHeaderAndTail(t *testing.T) {
	hostEnd, deviceEnd := transport.NewLoopbackPair()
	stop := make(chan struct{})
	defer close(stop)

	var gotHeader, gotTail []byte
	go func() {
		header, err := deviceEnd.ReadExact(FrameLen, time.Second)
		if err != nil {
			return
		}
		gotHeader = header
		tail, err := deviceEnd.ReadExact(TailLen, time.Second)
		if err != nil {
			return
		}
		gotTail = tail

		reply := make([]byte, FrameLen)
		copy(reply, header)
		hi, lo := crc.CCITT(reply[:FrameLen-2])
		reply[FrameLen-2], reply[FrameLen-1] = hi, lo
		_ = deviceEnd.Write(reply)
	}()

	link := NewLink(hostEnd, nil)
	link.Timeout = time.Second

	var data [128]byte
	for i := range data {
		data[i] = byte(i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, link.CodeWrite128(ctx, 0x0100, data))

	time.Sleep(50 * time.Millisecond)
	require.Len(t, gotHeader, FrameLen)
	require.Equal(t, data[0:4], gotHeader[6:10])
	require.Len(t, gotTail, TailLen)
	require.Equal(t, data[4:128], gotTail[:124])
}

func TestLinkCancelStopsRetryLoop(t *testing.T) {
	hostEnd, _ := transport.NewLoopbackPair()
	link := NewLink(hostEnd, nil)
	link.Timeout = 30 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := link.CodeRead4(ctx, 0x0000)
	require.Error(t, err)
}
