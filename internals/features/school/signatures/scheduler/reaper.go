package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/signatures/service"
	osshelper "attendly_backend/internals/helpers/oss"
)

// Objects younger than this are never touched, so in-flight uploads whose
// metadata insert has not landed yet are safe.
const orphanMinAge = 24 * time.Hour

// StartOrphanReaperCron sweeps the signatures prefix nightly and deletes
// objects no metadata row references. Covers the rare case where an upload
// succeeded, the insert failed and the inline rollback delete failed too.
func StartOrphanReaperCron(db *gorm.DB) {
	c := cron.New()

	_, err := c.AddFunc("30 2 * * *", func() {
		svc, err := osshelper.NewOSSServiceFromEnv("")
		if err != nil {
			log.Printf("[REAPER] OSS not configured, skipping sweep: %v", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		n, err := service.ReapOrphans(ctx, db, svc, time.Now().Add(-orphanMinAge))
		if err != nil {
			log.Printf("❌ [REAPER] orphan sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("✅ [REAPER] removed %d orphaned signature objects", n)
		}
	})
	if err != nil {
		log.Printf("❌ [REAPER] failed to register cron: %v", err)
		return
	}

	c.Start()
	log.Println("✅ Orphaned-signature reaper scheduled (daily 02:30)")
}
