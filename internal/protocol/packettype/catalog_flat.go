package packettype

// Рукопожатие, статус и вход: опкоды не зависят от ревизии.
var (
	HandshakeToServerIntention            = declareFlat(ToServer, Handshake, "intention", 0x00)
	HandshakeToServerLegacyServerListPing = declareFlat(ToServer, Handshake, "legacy_server_list_ping", 0xFE)
	HandshakeToClientLegacyServerListPong = declareFlat(ToClient, Handshake, "legacy_server_list_pong", 0xFE)

	StatusToServerRequest  = declareFlat(ToServer, Status, "request", 0x00)
	StatusToServerPing     = declareFlat(ToServer, Status, "ping", 0x01)
	StatusToClientResponse = declareFlat(ToClient, Status, "response", 0x00)
	StatusToClientPong     = declareFlat(ToClient, Status, "pong", 0x01)

	LoginToServerLoginStart         = declareFlat(ToServer, Login, "login_start", 0x00)
	LoginToServerEncryptionResponse = declareFlat(ToServer, Login, "encryption_response", 0x01)
	LoginToServerPluginResponse     = declareFlat(ToServer, Login, "login_plugin_response", 0x02)
	LoginToServerLoginSuccessAck    = declareFlat(ToServer, Login, "login_success_ack", 0x03)
	LoginToServerCookieResponse     = declareFlat(ToServer, Login, "cookie_response", 0x04)
	LoginToClientDisconnect         = declareFlat(ToClient, Login, "disconnect", 0x00)
	LoginToClientEncryptionRequest  = declareFlat(ToClient, Login, "encryption_request", 0x01)
	LoginToClientLoginSuccess       = declareFlat(ToClient, Login, "login_success", 0x02)
	LoginToClientSetCompression     = declareFlat(ToClient, Login, "set_compression", 0x03)
	LoginToClientPluginRequest      = declareFlat(ToClient, Login, "login_plugin_request", 0x04)
	LoginToClientCookieRequest      = declareFlat(ToClient, Login, "cookie_request", 0x05)
)
