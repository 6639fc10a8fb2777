package loginhour

import "context"

type LoginHourService interface {
	Login(ctx context.Context, req SessionRequest) (LoginHourResponse, error)
	Logout(ctx context.Context, req SessionRequest) (LoginHourResponse, error)
	StartBreak(ctx context.Context, req SessionRequest) (LoginHourResponse, error)
	EndBreak(ctx context.Context, req SessionRequest) (EndBreakResponse, error)
	TodayStats(ctx context.Context, employeeID string) (TodayStatsResponse, error)
	ListAll(ctx context.Context) ([]LoginHourResponse, error)

	// SweepOpenBreaks applies the break policy to every open break of the current shift day.
	SweepOpenBreaks(ctx context.Context) error
}
