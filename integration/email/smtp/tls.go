package smtp

// TLSMode is the connection security applied to an SMTP session.
type TLSMode string

const (
	// TLSModeImplicit wraps the connection in TLS before the SMTP greeting (SMTPS).
	TLSModeImplicit TLSMode = "tls"
	// TLSModeSTARTTLS upgrades a plain connection with STARTTLS. The upgrade is
	// required: servers that do not offer it are rejected.
	TLSModeSTARTTLS TLSMode = "starttls"
	// TLSModeNone sends everything unencrypted, e.g. to a local relay.
	TLSModeNone TLSMode = "plain"
)

// ImplicitTLSPort is the legacy SMTPS submission port.
const ImplicitTLSPort = 465

// SelectTLSMode maps a stored port and secure flag to a TLS mode:
// 465 with secure uses implicit TLS, any other port with secure requires
// STARTTLS, and secure=false disables encryption regardless of port.
func SelectTLSMode(port int, secure bool) TLSMode {
	switch {
	case !secure:
		return TLSModeNone
	case port == ImplicitTLSPort:
		return TLSModeImplicit
	default:
		return TLSModeSTARTTLS
	}
}

func (m TLSMode) String() string {
	return string(m)
}
