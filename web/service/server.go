package service

import (
	"time"

	"pinboard/config"
	"pinboard/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

// Status is the host snapshot shown on the admin dashboard.
type Status struct {
	T   time.Time `json:"-"`
	Cpu float64   `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime  uint64 `json:"uptime"`
	Version string `json:"version"`
}

// Stats are the entity counts shown on the admin dashboard.
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalPosts      int64 `json:"totalPosts"`
	TotalCategories int64 `json:"totalCategories"`
	TotalComments   int64 `json:"totalComments"`
	TotalNews       int64 `json:"totalNews"`
}

// ServerService reports host status and board statistics for the dashboard.
type ServerService struct {
	userService     *UserService
	postService     *PostService
	categoryService *CategoryService
	newsService     *NewsService
}

func NewServerService(db *gorm.DB) *ServerService {
	return &ServerService{
		userService:     NewUserService(db),
		postService:     NewPostService(db),
		categoryService: NewCategoryService(db),
		newsService:     NewNewsService(db),
	}
}

func (s *ServerService) Status() *Status {
	now := time.Now()
	status := &Status{
		T:       now,
		Version: config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	return status
}

func (s *ServerService) Stats() (*Stats, error) {
	stats := &Stats{}
	var err error
	if stats.TotalUsers, err = s.userService.Count(); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = s.postService.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categoryService.Count(); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = s.postService.TotalComments(); err != nil {
		return nil, err
	}
	if stats.TotalNews, err = s.newsService.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}
