// Package main provides localization for the cropaway CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"FFmpeg":   "FFmpeg設定",
		"Encoding": "エンコード",
		"Debug":    "デバッグ",
		"Logging":  "ログ",

		// Root command
		"Export videos with keyframed crops and masks": "キーフレーム付きのクロップとマスクで動画を書き出す",

		// Global flags
		"YAML configuration file": "YAML設定ファイル",
		"Path to the ffmpeg binary (falls back to FFMPEG_PATH, then PATH)": "ffmpegバイナリのパス（未指定時は FFMPEG_PATH、次に PATH を使用）",
		"Directory for temporary segment and mask files":                   "セグメントとマスクの一時ファイル用ディレクトリ",
		"Maximum duration of a single ffmpeg run (0 = unlimited)":          "ffmpeg 1回あたりの最大実行時間（0 = 無制限）",
		"Always use the software encoder":                                  "常にソフトウェアエンコーダを使用",
		"Software encoder CRF (0-51, lower is better)":                     "ソフトウェアエンコーダのCRF値（0-51、低いほど高品質）",
		"Software encoder preset":                                          "ソフトウェアエンコーダのプリセット",
		"Enable debug output":                                              "デバッグ出力を有効化",
		"Directory for debug output":                                       "デバッグ出力先ディレクトリ",
		"Log level (debug, info, warn, error)":                             "ログレベル（debug, info, warn, error）",
		"Log format (console, hclog, json)":                                "ログ形式（console, hclog, json）",
		"Suppress all log output":                                          "すべてのログ出力を抑制",

		// Export command
		"Export a video with the crop described by a crop document":    "クロップ定義に従って動画を書き出す",
		"Output MP4 file path (required)":                              "出力MP4ファイルパス（必須）",
		"Crop document (YAML or JSON); omitted means the default crop": "クロップ定義ファイル（YAMLまたはJSON）。省略時はデフォルトのクロップ",
		"Output export summary to file (Markdown format)":              "エクスポートのサマリーをファイルに出力（Markdown形式）",
		"Disable the progress bar":                                     "プログレスバーを表示しない",
		"Exactly one input video is required":                          "入力動画を1つだけ指定してください",
		"Exporting":                                                    "エクスポート中",
		"Export cancelled":                                             "エクスポートを中止しました",

		// Mask command
		"Decode an RLE mask and write it as PNG":                 "RLEマスクをデコードしてPNGとして保存",
		"Output PNG file path (required)":                        "出力PNGファイルパス（必須）",
		"Resample to this width":                                 "この幅にリサンプリング",
		"Resample to this height":                                "この高さにリサンプリング",
		"Soften mask edges":                                      "マスクの境界をぼかす",
		"Exactly one mask file is required":                      "マスクファイルを1つだけ指定してください",
		"The mask is empty; --width and --height are required":   "マスクが空です。--width と --height を指定してください",
		"Format: %s, size: %dx%d, visible: %d px":                "形式: %s, サイズ: %dx%d, 表示: %d px",
		"Bounding box: x=%.4f y=%.4f w=%.4f h=%.4f":              "外接矩形: x=%.4f y=%.4f w=%.4f h=%.4f",

		// Expr command
		"Print the animated crop filter for a rectangle crop document": "矩形クロップ定義のアニメーション付きクロップフィルタを表示",
		"Video width in pixels":                                         "動画の幅（ピクセル）",
		"Video height in pixels":                                        "動画の高さ（ピクセル）",
		"Evaluate the crop at these times (seconds)":                    "指定した時刻（秒）でクロップを評価",
		"Exactly one crop document is required":                         "クロップ定義ファイルを1つだけ指定してください",
		"Animated crop filters need rectangle mode, got %s":             "アニメーション付きクロップフィルタは矩形モードのみ対応しています（指定: %s）",

		// Encoders command
		"Probe the available H.264 encoders":                  "利用可能なH.264エンコーダを調べる",
		"ffmpeg was not found; install it or set FFMPEG_PATH": "ffmpegが見つかりません。インストールするか FFMPEG_PATH を設定してください",
		"ffmpeg: %s":   "ffmpeg: %s",
		"available":    "利用可",
		"unavailable":  "利用不可",
		"Selected: %s": "選択: %s",

		// Version command
		"Show version information": "バージョン情報を表示",
		"cropaway version %s":      "cropaway バージョン %s",

		// Summary
		"Export Summary": "エクスポートサマリー",
		"Source":         "入力",
		"Export":         "エクスポート",
		"Segments":       "セグメント",
		"Filter":         "フィルタ",
		"Output":         "出力",
		"Item":           "項目",
		"Value":          "値",
		"File":           "ファイル",
		"Duration":       "長さ",
		"Resolution":     "解像度",
		"Codec":          "コーデック",
		"Bitrate":        "ビットレート",
		"Crop Mode":      "クロップモード",
		"Strategy":       "方式",
		"Keyframes":      "キーフレーム数",
		"hardware":       "ハードウェア",
		"Encoder":        "エンコーダ",
		"Elapsed":        "所要時間",
		"Start":          "開始",
		"End":            "終了",
		"File Size":      "ファイルサイズ",
		"Generated at":   "生成日時",
	})
}
