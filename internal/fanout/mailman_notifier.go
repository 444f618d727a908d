package fanout

import (
	"context"
	"fmt"
	"time"

	"fihealth/internal/clients"
	"fihealth/internal/fanout/interfaces"
	"fihealth/internal/models"
	"fihealth/internal/structures"
)

const (
	ChannelMailman = "mailing list"
	mailNameFrom   = "fi-health sanity"
)

type MailmanNotifier struct {
	conf   *structures.Config
	client clients.MailmanClientInterface
}

func NewMailmanNotifier(conf *structures.Config, client clients.MailmanClientInterface) interfaces.NotifierInterface {
	return &MailmanNotifier{conf: conf, client: client}
}

func (n *MailmanNotifier) Channel() string {
	return ChannelMailman
}

func (n *MailmanNotifier) Timeout() time.Duration {
	return n.conf.Mailman.Timeout
}

// Message builds the status change mail for a region list.
func (n *MailmanNotifier) Message(record *models.RegionRecord) *clients.MailMessage {
	return &clients.MailMessage{
		NameFrom:  mailNameFrom,
		EmailFrom: n.conf.Mailman.EmailFrom,
		Subject:   fmt.Sprintf("Status changed for region %s", record.Node),
		Body: fmt.Sprintf("Status changed to %s for region %s (visit %sreport/%s_results.html for details)",
			record.Status, record.Node, n.conf.App.FiHealthUrl, record.Node),
	}
}

func (n *MailmanNotifier) Notify(ctx context.Context, record *models.RegionRecord) error {
	return deliveryError(n.client.SendMail(ctx, record.Node, n.Message(record)))
}
