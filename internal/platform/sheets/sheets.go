package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func New(ctx context.Context, credentialsFile, spreadsheetID string) (*sheets.Service, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("build sheets service failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(pingCtx).Do(); err != nil {
		return nil, fmt.Errorf("ping spreadsheet failed: %w", err)
	}

	return svc, nil
}
