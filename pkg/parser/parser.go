package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-layout-kit/pkg/domain"

	"gopkg.in/yaml.v3"
)

// ContentReader は台本ソースを開くための最小インターフェースです。
// remoteio.InputReader がこれを満たすため、GCS URI とローカルパスの
// どちらからでも読み込めます。
type ContentReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Parser は台本を解析するためのインターフェースを定義します。
type Parser interface {
	ParseFromPath(ctx context.Context, fullPath string) (*domain.Script, error)
}

// ScriptParser はレイアウト入力となる台本ファイルを解析する構造体です。
// 拡張子から JSON / YAML / プレーンテキストを判別します。
type ScriptParser struct {
	reader ContentReader
}

// NewScriptParser は新しい ScriptParser インスタンスを生成します。
func NewScriptParser(r ContentReader) *ScriptParser {
	return &ScriptParser{reader: r}
}

// ParseFromPath は指定された GCS URI やローカルファイルパスから台本を読み込み、
// 解析して domain.Script を返します。
func (p *ScriptParser) ParseFromPath(ctx context.Context, scriptFile string) (*domain.Script, error) {
	slog.InfoContext(ctx, "台本ファイルを読み込んでいます", "path", scriptFile)
	rc, err := p.reader.Open(ctx, scriptFile)
	if err != nil {
		return nil, fmt.Errorf("台本ファイルのオープンに失敗しました (%s): %w", scriptFile, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("台本ファイルの読み込みに失敗しました (%s): %w", scriptFile, err)
	}

	script, err := Parse(data, filepath.Ext(scriptFile))
	if err != nil {
		return nil, fmt.Errorf("台本ファイルの解析に失敗しました (%s): %w", scriptFile, err)
	}
	return script, nil
}

// Parse はバイト列を拡張子ヒントに従って domain.Script に変換します。
// 未知の拡張子はプレーンテキスト（1行=1シーン）として扱います。
func Parse(data []byte, ext string) (*domain.Script, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parsePlainText(data), nil
	}
}

func parseJSON(data []byte) (*domain.Script, error) {
	script := &domain.Script{}
	if err := json.Unmarshal(data, script); err != nil {
		return nil, fmt.Errorf("台本JSONのパースに失敗しました: %w", err)
	}
	return script, nil
}

func parseYAML(data []byte) (*domain.Script, error) {
	script := &domain.Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, fmt.Errorf("台本YAMLのパースに失敗しました: %w", err)
	}
	return script, nil
}

// parsePlainText は空行を除いた各行を1シーンとして取り込みます。
// ムードやフォーマットは持てないため、呼び出し側のフラグ指定に委ねます。
func parsePlainText(data []byte) *domain.Script {
	script := &domain.Script{}
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			script.Scenes = append(script.Scenes, trimmed)
		}
	}
	return script
}
