package cron

import (
	"TaylorDAM/internal/job"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	pendingUploadJob     *job.PendingUploadCleanupJob
	invitationCleanupJob *job.InvitationCleanupJob
	names                map[cron.EntryID]string
}

func NewCronManager(pendingUploadJob *job.PendingUploadCleanupJob, invitationCleanupJob *job.InvitationCleanupJob) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		pendingUploadJob:     pendingUploadJob,
		invitationCleanupJob: invitationCleanupJob,
		names:                map[cron.EntryID]string{},
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{"pending-upload-cleanup", "@hourly", s.pendingUploadJob},
		{"invitation-cleanup", "@daily", s.invitationCleanupJob},
	}
	for _, j := range jobs {
		id, err := s.engine.AddJob(j.spec, j.job)
		if err != nil {
			return fmt.Errorf("register %s: %w", j.name, err)
		}
		s.names[id] = j.name
	}
	return nil
}

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	for _, entry := range mgr.engine.Entries() {
		log.Info("cron job scheduled", "job", mgr.names[entry.ID], "next", entry.Next)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
