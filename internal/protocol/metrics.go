package protocol

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
)

// Metrics - счётчики кодека. Нулевой указатель допустим и ничего не считает.
type Metrics struct {
	decoded *prometheus.CounterVec
	encoded *prometheus.CounterVec
	errors  *prometheus.CounterVec
}

// NewMetrics создаёт счётчики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"phase", "direction", "type"}
	m := &Metrics{
		decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "protobridge",
			Name:      "packets_decoded_total",
			Help:      "Число разобранных пакетов.",
		}, labels),
		encoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "protobridge",
			Name:      "packets_encoded_total",
			Help:      "Число собранных пакетов.",
		}, labels),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "protobridge",
			Name:      "codec_errors_total",
			Help:      "Ошибки кодека по видам.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.decoded, m.encoded, m.errors)
	return m
}

func count(vec *prometheus.CounterVec, p Packet) {
	if p.Type == nil {
		return
	}
	vec.WithLabelValues(p.Type.Phase().String(), p.Type.Direction().String(), p.Type.Name()).Inc()
}

func (m *Metrics) decodedPacket(p Packet) {
	if m != nil {
		count(m.decoded, p)
	}
}

func (m *Metrics) encodedPacket(p Packet) {
	if m != nil {
		count(m.encoded, p)
	}
}

func (m *Metrics) failure(err error) {
	if m == nil || err == nil {
		return
	}
	m.errors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind возвращает короткое имя вида ошибки для меток и журналов.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownOpcode):
		return "unknown_opcode"
	case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrWrongPhase):
		return "phase"
	case errors.Is(err, wire.ErrProtocolDesync):
		return "desync"
	case errors.Is(err, wire.ErrTruncated):
		return "truncated"
	case errors.Is(err, registry.ErrUnmapped):
		return "unmapped"
	case errors.Is(err, wire.ErrVarIntTooBig), errors.Is(err, wire.ErrInvalidLength), errors.Is(err, wire.ErrStringTooLong):
		return "malformed"
	}
	return "other"
}
