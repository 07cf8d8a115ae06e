package domain

// PeerNode is one row of the peer directory: a remote node this one is allowed
// to talk to, and which is allowed to talk to this one. Hostname is the
// primary key.
type PeerNode struct {
	Hostname string
	// InboundUsername and InboundPassword are the credentials the remote node
	// presents when calling us. The password is stored bcrypt-hashed.
	InboundUsername string
	InboundPassword string
	// ApiLocation plus OutboundUsername/OutboundPassword are what we use when
	// calling the remote node.
	ApiLocation      string
	OutboundUsername string
	OutboundPassword string
	ImageShare       bool
	PostShare        bool
	// AppendSlash marks peers that 404 on paths without a trailing slash.
	AppendSlash bool
}
