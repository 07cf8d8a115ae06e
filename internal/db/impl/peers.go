package impl

import (
	"context"
	"database/sql"
	"errors"

	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const peerColumns = "hostname, inbound_username, inbound_password, api_location, outbound_username, outbound_password, image_share, post_share, append_slash"

func (d *dbImpl) GetPeer(ctx context.Context, hostname string) (domain.PeerNode, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+peerColumns+" FROM nodes WHERE hostname = ?", hostname)
	return d.scanPeer(row)
}

func (d *dbImpl) ListPeers(ctx context.Context) ([]domain.PeerNode, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+peerColumns+" FROM nodes")
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	peers := []domain.PeerNode{}
	for rows.Next() {
		var p domain.PeerNode
		err := rows.Scan(&p.Hostname, &p.InboundUsername, &p.InboundPassword, &p.ApiLocation,
			&p.OutboundUsername, &p.OutboundPassword, &p.ImageShare, &p.PostShare, &p.AppendSlash)
		if err != nil {
			return nil, d.HandleError(err)
		}
		peers = append(peers, p)
	}
	return peers, d.HandleError(rows.Err())
}

// CreatePeer stores the peer with its inbound password hashed. The outbound
// password has to stay recoverable, it is replayed on every call to the peer.
func (d *dbImpl) CreatePeer(ctx context.Context, peer domain.PeerNode) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(peer.InboundPassword), BcryptCost)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO nodes (hostname, inbound_username, inbound_password, api_location,
			outbound_username, outbound_password, image_share, post_share, append_slash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		peer.Hostname, peer.InboundUsername, string(hash), peer.ApiLocation,
		peer.OutboundUsername, peer.OutboundPassword, peer.ImageShare, peer.PostShare,
		peer.AppendSlash)
	return d.HandleError(err)
}

func (d *dbImpl) AuthenticatePeer(ctx context.Context, username, password string) (domain.PeerNode, bool, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+peerColumns+" FROM nodes WHERE inbound_username = ?", username)
	peer, err := d.scanPeer(row)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domain.PeerNode{}, false, nil
		}
		return domain.PeerNode{}, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(peer.InboundPassword), []byte(password)) != nil {
		return domain.PeerNode{}, false, nil
	}
	return peer, true, nil
}

func (d *dbImpl) scanPeer(row *sql.Row) (domain.PeerNode, error) {
	var p domain.PeerNode
	err := row.Scan(&p.Hostname, &p.InboundUsername, &p.InboundPassword, &p.ApiLocation,
		&p.OutboundUsername, &p.OutboundPassword, &p.ImageShare, &p.PostShare, &p.AppendSlash)
	return p, d.HandleError(err)
}
