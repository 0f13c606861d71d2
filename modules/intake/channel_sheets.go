package intake

import (
	"context"
	"errors"
	"time"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sheets"
)

// SheetTimestampLayout formats the first column of the appended row.
const SheetTimestampLayout = "1/2/2006, 3:04:05 PM"

// SheetsChannel appends one row per submission to a Google spreadsheet.
type SheetsChannel struct {
	client *sheets.Client
	cfgErr error
	loc    *time.Location
}

// NewSheetsChannel never fails; configuration problems are reported as a
// *ConfigError by Ready and Send.
func NewSheetsChannel(cfg sheets.Config, loc *time.Location, opts ...sheets.Option) *SheetsChannel {
	if loc == nil {
		loc = time.UTC
	}
	ch := &SheetsChannel{loc: loc}
	client, err := sheets.New(cfg, opts...)
	if err != nil {
		ch.cfgErr = err
		return ch
	}
	ch.client = client
	return ch
}

func (c *SheetsChannel) ID() ChannelID { return ChannelSheets }

func (c *SheetsChannel) Ready() error {
	if c.cfgErr != nil {
		return &ConfigError{Channel: ChannelSheets, Err: c.cfgErr}
	}
	return nil
}

// Row is the appended row: timestamp, name, email, phone, message.
func (c *SheetsChannel) Row(rec Record) []string {
	return []string{
		rec.SubmittedAt.In(c.loc).Format(SheetTimestampLayout),
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Message,
	}
}

// Send appends exactly one row. The rendered html is not used.
func (c *SheetsChannel) Send(ctx context.Context, rec Record, _ string) (Receipt, error) {
	if err := c.Ready(); err != nil {
		return Receipt{}, err
	}

	res, err := c.client.Append(ctx, c.Row(rec))
	if err != nil {
		if errors.Is(err, sheets.ErrInvalidConfig) {
			return Receipt{}, &ConfigError{Channel: ChannelSheets, Err: err}
		}
		return Receipt{}, &TransportError{Channel: ChannelSheets, Err: err}
	}

	rows := res.UpdatedRows
	if rows == 0 {
		rows = 1
	}
	return Receipt{RowsAppended: rows, UpdatedRange: res.UpdatedRange}, nil
}
