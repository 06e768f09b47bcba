package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Export (info)
		"Exporting %s (%dx%d, %.2fs) in %s mode": "%s をエクスポート中 (%dx%d, %.2f秒, %s モード)",
		"Exporting %d segments":                  "%d セグメントをエクスポートします",
		"Segment %d/%d: %.3fs-%.3fs":             "セグメント %d/%d: %.3f秒-%.3f秒",
		"Output saved to %s":                     "出力を %s に保存しました",
		"Interrupted, shutting down...":          "中断されました。シャットダウン中...",

		// Export (debug)
		"Crop filter: %s": "クロップフィルタ: %s",

		// Export (warn/error)
		"Export failed: %v":                   "エクスポートに失敗しました: %v",
		"Failed to remove temporary files: %v": "一時ファイルの削除に失敗しました: %v",
		"Failed to save export plan: %v":       "エクスポート計画の保存に失敗しました: %v",

		// Static stage
		"Exporting %s %.3fs+%.3fs with %s": "%s をエクスポート中 %.3f秒+%.3f秒 (%s)",
		"Failed to save debug mask: %v":    "デバッグ用マスクの保存に失敗しました: %v",

		// Concat stage
		"Joining %d segments into %s":       "%d セグメントを %s に結合中",
		"Failed to save debug manifest: %v": "デバッグ用マニフェストの保存に失敗しました: %v",

		// Mask renderer
		"Resampling %s mask %dx%d to %dx%d":                      "%s マスクを %dx%d から %dx%d にリサンプリング中",
		"AI mask could not be decoded, showing full frame: %v":    "AIマスクをデコードできないため、フレーム全体を表示します: %v",
		"Freehand path could not be decoded, using point list: %v": "フリーハンドのパスをデコードできないため、点列を使用します: %v",

		// ffmpeg
		"Running %s %s":                        "%s %s を実行中",
		"Failed to kill ffmpeg process tree: %v": "ffmpeg のプロセスツリーの終了に失敗しました: %v",

		// Encoder selection
		"Encoder %s unavailable: %v":         "エンコーダ %s は利用できません: %v",
		"Using hardware encoder %s":          "ハードウェアエンコーダ %s を使用します",
		"Using software encoder %s":          "ソフトウェアエンコーダ %s を使用します",
		"Hardware encoder arguments: %v":     "ハードウェアエンコーダの引数: %v",

		// Summary
		"Summary saved to %s":       "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
