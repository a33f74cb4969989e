package attendance

import "context"

type AttendanceService interface {
	ImportPunches(ctx context.Context, req ImportPunchesRequest) (ImportPunchesResponse, error)
	ListPunches(ctx context.Context, req ListPunchesRequest) (ListPunchesResponse, error)
}
