package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
)

func recordActivity(ctx context.Context, st storage.Storage, userID *int64, action, resource, resourceID, details string) error {
	entry := models.NewActivityLog{
		UserID:   userID,
		Action:   action,
		Resource: resource,
		Details:  details,
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}

	if _, err := st.CreateActivityLog(ctx, entry); err != nil {
		return fmt.Errorf("error writing activity log: %w", err)
	}
	return nil
}
