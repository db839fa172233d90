package packets

import (
	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// LinkKind - встроенный вид ссылки сервера; клиент подставляет свою подпись.
type LinkKind int32

const (
	LinkBugReport LinkKind = iota
	LinkCommunityGuidelines
	LinkSupport
	LinkStatus
	LinkFeedback
	LinkCommunity
	LinkWebsite
	LinkForums
	LinkNews
	LinkAnnouncements
)

// ServerLink - ссылка в меню паузы. Подпись либо встроенного вида (Left),
// либо текстовый компонент (Right).
type ServerLink struct {
	Label wire.Either[LinkKind, nbt.Tag]
	URL   string
}

// ServerLinks - ссылки сервера, с 1.21.
type ServerLinks struct {
	Links []ServerLink
}

func init() {
	register([]*packettype.Type{packettype.PlayToClientServerLinks, packettype.ConfigToClientServerLinks},
		readServerLinks, writeServerLinks)
}

func readServerLinks(b *wire.Buffer) ServerLinks {
	return ServerLinks{Links: wire.ReadList(b, readServerLink)}
}

func writeServerLinks(b *wire.Buffer, p ServerLinks) {
	wire.WriteList(b, p.Links, writeServerLink)
}

func readServerLink(b *wire.Buffer) ServerLink {
	label := wire.ReadEither(b, readLinkKind, (*wire.Buffer).ReadNBT)
	return ServerLink{Label: label, URL: b.ReadString()}
}

func writeServerLink(b *wire.Buffer, l ServerLink) {
	wire.WriteEither(b, l.Label, writeLinkKind, (*wire.Buffer).WriteNBT)
	b.WriteString(l.URL)
}

func readLinkKind(b *wire.Buffer) LinkKind {
	return LinkKind(b.ReadVarInt())
}

func writeLinkKind(b *wire.Buffer, k LinkKind) {
	b.WriteVarInt(int32(k))
}
