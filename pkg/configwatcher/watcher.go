package configwatcher

import (
	"context"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 接收重新解析后的配置
type Reloader func(cfg *config.Config)

const debounce = time.Second

// Watch 在配置目录的 config.yaml 被写入时重新加载并交给 reload，阻塞直到 ctx 结束
func Watch(ctx context.Context, configDir string, reload Reloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return err
	}
	// 监听目录而不是文件，编辑器保存时常会替换文件
	if err := watcher.Add(absDir); err != nil {
		return err
	}
	target := filepath.Join(absDir, "config.yaml")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(absDir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("path", target))
			reload(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
