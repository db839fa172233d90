package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/annel0/protobridge/internal/protocol"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/storage"
)

func revisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions",
		Short: "Список известных ревизий протокола",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ВЫПУСК\tПРОТОКОЛ")
			for _, rev := range version.Revisions() {
				fmt.Fprintf(w, "%s\t%d\n", rev, int32(rev))
			}
			return w.Flush()
		},
	}
}

// partitionFlags - общие флаги ревизии, фазы и направления.
type partitionFlags struct {
	rev   string
	phase string
	dir   string
}

func (f *partitionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rev, "rev", "1.21", "ревизия: имя выпуска или номер протокола")
	cmd.Flags().StringVar(&f.phase, "phase", "play", "фаза: handshake, status, login, configuration, play")
	cmd.Flags().StringVar(&f.dir, "dir", "to_client", "направление: to_client или to_server")
}

func (f *partitionFlags) parse() (version.Revision, packettype.Phase, packettype.Direction, error) {
	rev, err := parseRevision(f.rev)
	if err != nil {
		return 0, 0, 0, err
	}
	phase, err := packettype.ParsePhase(f.phase)
	if err != nil {
		return 0, 0, 0, err
	}
	dir, err := packettype.ParseDirection(f.dir)
	if err != nil {
		return 0, 0, 0, err
	}
	return rev, phase, dir, nil
}

func opcodesCmd() *cobra.Command {
	var f partitionFlags
	cmd := &cobra.Command{
		Use:   "opcodes",
		Short: "Таблица опкодов раздела для ревизии",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rev, phase, dir, err := f.parse()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "# %s/%s, %s\n", phase, dir, rev)
			for _, m := range packettype.Default().Opcodes(dir, phase, rev) {
				fmt.Fprintf(w, "0x%02X\t%s\n", m.Opcode, m.Type.Name())
			}
			return w.Flush()
		},
	}
	f.bind(cmd)
	return cmd
}

func decodeCmd() *cobra.Command {
	var f partitionFlags
	cmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Разобрать один кадр (опкод и полезная нагрузка) в hex; без аргумента читается stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, phase, dir, err := f.parse()
			if err != nil {
				return err
			}
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}
			frame, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
			if err != nil {
				return fmt.Errorf("ошибка разбора hex: %w", err)
			}

			s, err := newSession(rev)
			if err != nil {
				return err
			}
			if err := forcePhase(s, phase); err != nil {
				return err
			}
			p, err := newCodec().Decode(s, dir, frame)
			if err != nil {
				return err
			}
			printPacket(cmd.OutOrStdout(), 0, p)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

// forcePhase проводит сессию по допустимым переходам до нужной фазы.
func forcePhase(s *protocol.Session, target packettype.Phase) error {
	var path []packettype.Phase
	switch target {
	case packettype.Status:
		path = []packettype.Phase{packettype.Status}
	case packettype.Login:
		path = []packettype.Phase{packettype.Login}
	case packettype.Configuration:
		path = []packettype.Phase{packettype.Login, packettype.Configuration}
	case packettype.Play:
		path = []packettype.Phase{packettype.Login}
		if s.Revision() >= version.V1_20_2 {
			path = append(path, packettype.Configuration)
		}
		path = append(path, packettype.Play)
	}
	for _, p := range path {
		if err := s.Transition(p); err != nil {
			return err
		}
	}
	return nil
}

func printPacket(w io.Writer, seq uint64, p protocol.Packet) {
	if p.Payload == nil {
		fmt.Fprintf(w, "%6d  0x%02X %s  (%d байт без разбора)\n", seq, p.Opcode, p.Type, len(p.Raw))
		return
	}
	fmt.Fprintf(w, "%6d  0x%02X %s  %+v\n", seq, p.Opcode, p.Type, p.Payload)
}

func recordCmd() *cobra.Command {
	var (
		db  string
		rev string
		in  string
		dir string
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Записать поток кадров с префиксом длины в хранилище",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRevision(rev)
			if err != nil {
				return err
			}
			d, err := packettype.ParseDirection(dir)
			if err != nil {
				return err
			}
			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			if db == "" {
				db = cfg.Capture.GetPath()
			}
			cs, err := storage.NewCaptureStore(db)
			if err != nil {
				return err
			}
			defer cs.Close()

			s, err := newSession(r)
			if err != nil {
				return err
			}
			if err := cs.BeginSession(s.ID, s.Revision()); err != nil {
				return err
			}
			// Кадры разбираются по ходу записи, чтобы отслеживать порог сжатия.
			codec := newCodec()
			fr := protocol.NewFrameReader(src, s)
			n := 0
			for {
				frame, err := fr.ReadFrame()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("кадр %d: %w", n, err)
				}
				if _, err := cs.Record(s.ID, d, frame); err != nil {
					return err
				}
				if _, err := codec.Decode(s, d, frame); err != nil && !errors.Is(err, protocol.ErrUnknownOpcode) {
					return fmt.Errorf("кадр %d: %w", n, err)
				}
				n++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "сессия %s: записано %d кадров\n", s.ID, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "каталог хранилища (по умолчанию из конфигурации)")
	cmd.Flags().StringVar(&rev, "rev", "1.21", "начальная ревизия")
	cmd.Flags().StringVar(&in, "in", "", "файл с потоком кадров")
	cmd.Flags().StringVar(&dir, "dir", "to_server", "направление потока")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func replayCmd() *cobra.Command {
	var (
		db      string
		session string
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Разобрать записанную сессию; без --session выводит список сессий",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if db == "" {
				db = cfg.Capture.GetPath()
			}
			cs, err := storage.NewCaptureStore(db)
			if err != nil {
				return err
			}
			defer cs.Close()

			out := cmd.OutOrStdout()
			if session == "" {
				sessions, err := cs.Sessions()
				if err != nil {
					return err
				}
				for _, info := range sessions {
					fmt.Fprintf(out, "%s  %s  %s\n", info.ID, info.Revision, info.Started.Format("2006-01-02 15:04:05"))
				}
				return nil
			}
			id, err := uuid.Parse(session)
			if err != nil {
				return fmt.Errorf("неверный идентификатор сессии: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return storage.Replay(ctx, cs, newCodec(), id, func(f storage.Frame, p protocol.Packet) error {
				printPacket(out, f.Seq, p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "каталог хранилища (по умолчанию из конфигурации)")
	cmd.Flags().StringVar(&session, "session", "", "идентификатор сессии")
	return cmd
}
