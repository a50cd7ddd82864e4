package service

import (
	"context"
	"testing"
	"time"

	"github.com/oba-crm/backend/internal/models"
)

func TestFeedbackStatsAggregates(t *testing.T) {
	svc := newFeedbackService(&recorder{})
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []models.Feedback{
		{
			ID: "f1", Status: models.FeedbackPending, Timestamp: now,
			AIAnalysis: models.AIAnalysis{
				Sentiment: models.SentimentNegative, Category: models.CategoryServiceComplaint,
				Department: models.DepartmentOperations, SendToCallCenter: true,
			},
		},
		{
			ID: "f2", Status: models.FeedbackResolved, Timestamp: now,
			AIAnalysis: models.AIAnalysis{
				Sentiment: models.SentimentPositive, Category: models.CategoryServicePraise,
				Department: models.DepartmentService,
			},
		},
		{
			ID: "f3", Status: models.FeedbackInProgress, Timestamp: now.Add(-30 * 24 * time.Hour),
			AIAnalysis: models.AIAnalysis{
				Sentiment: models.SentimentNeutral, Category: models.CategoryInquiry,
				Department: models.DepartmentService,
			},
		},
	}
	for _, fb := range seed {
		if err := svc.Store.InsertFeedback(ctx, fb, nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.KPI.Total != 3 || stats.KPI.ThisWeek != 2 {
		t.Fatalf("unexpected KPI %+v", stats.KPI)
	}
	if stats.KPI.Resolved != 1 || stats.KPI.Pending != 1 || stats.KPI.CallCenter != 1 {
		t.Fatalf("unexpected KPI %+v", stats.KPI)
	}
	if stats.Sentiment.Positive != 1 || stats.Sentiment.Neutral != 1 || stats.Sentiment.Negative != 1 {
		t.Fatalf("unexpected sentiment split %+v", stats.Sentiment)
	}
	if stats.Categories["service_complaint"] != 1 || stats.Departments["Service"] != 2 {
		t.Fatalf("unexpected breakdowns %+v %+v", stats.Categories, stats.Departments)
	}
	if len(stats.DailyTrend) != 7 {
		t.Fatalf("expected a 7-day trend, got %d entries", len(stats.DailyTrend))
	}
	today := stats.DailyTrend[6]
	if today.Date != now.Format("2006-01-02") || today.Total != 2 {
		t.Fatalf("unexpected trend tail %+v", today)
	}
}

func TestTicketStatsAggregatesAndIsStable(t *testing.T) {
	svc := newCallCenterService(&recorder{})
	ctx := context.Background()

	seedTicket(t, svc, models.Ticket{ID: "t1", Status: models.TicketOpen, Priority: models.PriorityHigh})
	seedTicket(t, svc, models.Ticket{ID: "t2", Status: models.TicketInProgress, Priority: models.PriorityMedium})
	seedTicket(t, svc, models.Ticket{ID: "t3", Status: models.TicketResolved, Priority: models.PriorityLow})

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Open != 1 || stats.InProgress != 1 || stats.Resolved != 1 {
		t.Fatalf("unexpected status counts %+v", stats)
	}
	if stats.High != 1 || stats.Medium != 1 || stats.Low != 1 {
		t.Fatalf("unexpected priority counts %+v", stats)
	}
	if stats.TodayCalls < 10 || stats.TodayCalls >= 30 {
		t.Fatalf("todayCalls out of range: %d", stats.TodayCalls)
	}

	again, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if again.TodayCalls != stats.TodayCalls {
		t.Fatalf("todayCalls must be stable within a day")
	}
}
