package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
)

// Backup copies a remote file into localDir under a timestamped name before
// it gets overwritten. A missing remote file or a failed read skips the
// backup for that file only; delivery proceeds either way.
func Backup(ctx context.Context, t Transport, remotePath, localDir string) error {
	data, err := t.Read(ctx, remotePath)
	if err != nil {
		if errors.IsNotFound(err) {
			logging.Ctx(ctx).Debug().Str("path", remotePath).Msg("No remote file to back up")
			return nil
		}
		logging.Ctx(ctx).Warn().Err(err).Str("path", remotePath).Msg("Backup read failed; skipping backup for this file")
		return nil
	}

	if err := os.MkdirAll(localDir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", localDir, err)
	}

	base := filepath.Base(remotePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s-%s%s", stem, time.Now().Format(constants.BackupTimeFormat), ext)
	path := filepath.Join(localDir, name)

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Ctx(ctx).Info().Str("remote", remotePath).Str("backup", path).Msg("Backed up remote file")
	return nil
}
