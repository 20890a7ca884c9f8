package codemem

import (
	"context"
	"testing"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/crc"
	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
	"github.com/stretchr/testify/require"
)

// fakeCodeMemory answers code_read_4/code_write_4/code_write_128 frames
// against an in-memory byte array, enough to exercise the full
// head/bulk-128/bulk-4/tail decomposition end to end.
func fakeCodeMemory(t *testing.T, deviceEnd *transport.Loopback, mem []byte, stop <-chan struct{}) {
	t.Helper()
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			req, err := deviceEnd.ReadExact(ocdproto.FrameLen, 50*time.Millisecond)
			if err != nil || !crc.Verify(req) {
				continue
			}
			op := ocdproto.Op(req[3] >> 1)
			addr := uint16(req[4])<<8 | uint16(req[5])

			switch op {
			case ocdproto.OpCodeWrite128Ack:
				tail, err := deviceEnd.ReadExact(ocdproto.TailLen, 200*time.Millisecond)
				if err != nil || !crc.Verify(append(append([]byte(nil), tail[:124]...), tail[124], tail[125])) {
					continue
				}
				copy(mem[addr:], req[6:10])
				copy(mem[int(addr)+4:], tail[:124])
			case ocdproto.OpCodeWrite4Ack, ocdproto.OpCodeWrite4NoAck:
				copy(mem[addr:addr+4], req[6:10])
			case ocdproto.OpCodeRead4:
				// reply payload filled below
			}

			reply := make([]byte, ocdproto.FrameLen)
			copy(reply, req)
			if op == ocdproto.OpCodeRead4 {
				copy(reply[6:10], mem[addr:addr+4])
			}
			hi, lo := crc.CCITT(reply[:ocdproto.FrameLen-2])
			reply[ocdproto.FrameLen-2], reply[ocdproto.FrameLen-1] = hi, lo
			_ = deviceEnd.Write(reply)
		}
	}()
}

func TestWriteReadRoundTripAcrossAllPhases(t *testing.T) {
	hostEnd, deviceEnd := transport.NewLoopbackPair()
	mem := make([]byte, 65536)
	stop := make(chan struct{})
	defer close(stop)
	fakeCodeMemory(t, deviceEnd, mem, stop)

	link := ocdproto.NewLink(hostEnd, nil)
	link.Timeout = 500 * time.Millisecond
	io := &IO{Link: link}

	// 3 head bytes + one 128-byte block + 2 words + 1 tail byte.
	data := make([]byte, 3+128+8+1)
	for i := range data {
		data[i] = byte(i + 1)
	}
	addr := uint16(0x0101) // misaligned by 1, forcing a 3-byte head phase

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, io.Write(ctx, addr, data))

	got, err := io.Read(ctx, addr, len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)
}
