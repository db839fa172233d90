package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/protobridge/internal/config"
	"github.com/annel0/protobridge/internal/protocol"
	"github.com/annel0/protobridge/internal/protocol/packets"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	cfg = &config.Config{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestParseRevision(t *testing.T) {
	rev, err := parseRevision("1.20.5")
	require.NoError(t, err)
	assert.Equal(t, version.V1_20_5, rev)

	rev, err = parseRevision("341")
	require.NoError(t, err)
	assert.Equal(t, version.V1_12_2, rev, "номер нормализуется к известной ревизии")

	_, err = parseRevision("beta")
	assert.Error(t, err)
}

func TestForcePhase(t *testing.T) {
	cfg = &config.Config{}
	s, err := newSession(version.V1_21)
	require.NoError(t, err)
	require.NoError(t, forcePhase(s, packettype.Play))
	assert.Equal(t, packettype.Play, s.Phase())

	s, err = newSession(version.V1_12_2)
	require.NoError(t, err)
	assert.ErrorIs(t, forcePhase(s, packettype.Configuration), protocol.ErrIllegalTransition,
		"до 1.20.2 фазы конфигурации нет")
}

func TestOpcodesCommand(t *testing.T) {
	out := run(t, opcodesCmd(), "--rev", "1.12.2", "--phase", "play", "--dir", "to_client")
	assert.Contains(t, out, "0x1F  keep_alive")
	assert.Contains(t, out, "0x23  join_game")
}

func TestDecodeCommand(t *testing.T) {
	out := run(t, decodeCmd(), "--rev", "1.12.2", "1F 00 00 00 00 00 00 00 63")
	assert.Contains(t, out, "play/to_client/keep_alive")
	assert.Contains(t, out, "{ID:99}")
}

func TestRecordAndReplayCommands(t *testing.T) {
	dir := t.TempDir()
	stream := filepath.Join(dir, "frames.bin")

	cfg = &config.Config{}
	s, err := newSession(version.V1_8)
	require.NoError(t, err)
	codec := protocol.NewCodec()
	var buf bytes.Buffer
	for _, p := range []protocol.Packet{
		{Type: packettype.HandshakeToServerIntention, Payload: packets.Handshake{
			Protocol: int32(version.V1_8), Address: "localhost", Port: 25565, Intent: packets.IntentStatus,
		}},
		{Type: packettype.StatusToServerRequest, Payload: packets.StatusRequest{}},
		{Type: packettype.StatusToServerPing, Payload: packets.Ping{Payload: 7}},
	} {
		frame, err := codec.Encode(s, p)
		require.NoError(t, err)
		require.NoError(t, protocol.WriteFrame(&buf, s, frame))
	}
	require.NoError(t, os.WriteFile(stream, buf.Bytes(), 0o600))

	db := filepath.Join(dir, "db")
	out := run(t, recordCmd(), "--db", db, "--rev", "1.8", "--in", stream)
	require.Contains(t, out, "записано 3 кадров")
	id := strings.Fields(strings.TrimPrefix(out, "сессия "))[0]
	id = strings.TrimSuffix(id, ":")

	list := run(t, replayCmd(), "--db", db)
	assert.Contains(t, list, id)

	out = run(t, replayCmd(), "--db", db, "--session", id)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "handshake/to_server/intention")
	assert.Contains(t, lines[1], "status/to_server/request")
	assert.Contains(t, lines[2], "status/to_server/ping")
}
