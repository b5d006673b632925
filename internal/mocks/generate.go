package mocks

//go:generate mockery --name ReportStore --srcpkg github.com/aevon-lab/stationstats/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
