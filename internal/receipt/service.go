package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrNotPaid = errors.New("booking_not_paid")

type Service interface {
	Render(ctx context.Context, bookingID string) ([]byte, error)
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Bookings bookingdomain.Service
}

type service struct {
	log      *zap.Logger
	bookings bookingdomain.Service
}

func New(p Params) Service {
	return &service{
		log:      p.Log.Named("receipt.service"),
		bookings: p.Bookings,
	}
}

// Render produces a PDF receipt for a paid booking. Line rows come
// verbatim from the stored quote snapshot, never recomputed.
func (s *service) Render(ctx context.Context, bookingID string) ([]byte, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !paidStatus(booking.Status) {
		return nil, ErrNotPaid
	}

	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12, text.NewCol(12, "HandyHearts", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
	}))
	m.AddRow(6, text.NewCol(12, "Payment receipt", props.Text{Size: 10}))
	m.AddRow(8,
		text.NewCol(6, "Booking "+booking.ID, props.Text{Size: 9}),
		text.NewCol(6, booking.ScheduledAt.Format("Jan 2, 2006 15:04 MST"), props.Text{
			Size:  9,
			Align: align.Right,
		}),
	)
	m.AddRow(6, text.NewCol(12, booking.AddressText, props.Text{Size: 9}))
	m.AddRow(4, line.NewCol(12))

	for _, item := range booking.PriceBreakdown.Items {
		m.AddRow(6,
			text.NewCol(9, item.Label, props.Text{Size: 9}),
			text.NewCol(3, formatCents(item.AmountCents), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		)
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(9, "Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(3, formatCents(booking.PriceBreakdown.TotalCents), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	s.log.Info("receipt rendered", zap.String("booking_id", booking.ID))
	return doc.GetBytes(), nil
}

func paidStatus(status bookingdomain.Status) bool {
	switch status {
	case bookingdomain.StatusPaid, bookingdomain.StatusAssigned,
		bookingdomain.StatusInProgress, bookingdomain.StatusCompleted:
		return true
	}
	return false
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
