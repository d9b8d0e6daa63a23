// Package viewer 用 ebiten 俯视绘制一个训练环境（调试视图）
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/penguin/pkg/game"
)

// 默认窗口与比例
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultScale  = 20.0 // 每米像素数
)

var (
	colorSea     = color.RGBA{R: 24, G: 64, B: 112, A: 255}
	colorIce     = color.RGBA{R: 210, G: 230, B: 240, A: 255}
	colorAgent   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	colorBaby    = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colorPrey    = color.RGBA{R: 250, G: 120, B: 80, A: 255}
	colorTarget  = color.RGBA{R: 250, G: 120, B: 80, A: 90}
	colorHeading = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Viewer 实现 ebiten.Game：每个 ebiten tick 推进一个固定帧
type Viewer struct {
	env    *game.Environment
	width  int
	height int
	scale  float64
	paused bool
}

// New 创建调试视图
func New(env *game.Environment) *Viewer {
	return &Viewer{
		env:    env,
		width:  DefaultWidth,
		height: DefaultHeight,
		scale:  DefaultScale,
	}
}

// Paused 是否暂停
func (v *Viewer) Paused() bool { return v.paused }

// Update 处理按键并推进模拟
//
// 按键:
//   - R: 重置区域（开始新回合）
//   - Space: 暂停/继续
//   - Escape: 退出
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.env.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	v.Step()
	return nil
}

// Step 推进一个固定帧并刷新显示（暂停时只刷新显示）
func (v *Viewer) Step() {
	if !v.paused {
		v.env.FixedUpdate()
	}
	v.env.Update()
}

// Draw 绘制当前快照
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorSea)
	snap := v.env.Snapshot()
	center := snap.Center

	// 冰面：覆盖所有放置范围
	cx, cy := v.project(center, center)
	vector.DrawFilledCircle(screen, cx, cy, float32(13.5*v.scale), colorIce, true)

	for _, p := range snap.Prey {
		px, py := v.project(p.Position, center)
		tx, ty := v.project(p.Target, center)
		vector.StrokeLine(screen, px, py, tx, ty, 1, colorTarget, true)
		v.drawBody(screen, p.EntityPose, center, 0.3, colorPrey)
	}
	v.drawBody(screen, snap.Baby, center, 0.4, colorBaby)
	v.drawBody(screen, snap.Agent, center, 0.5, colorAgent)

	status := "running"
	if v.paused {
		status = "paused"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Reward: %s", snap.RewardText), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Episode %d  Tick %d  Prey %d  (%s)",
		snap.Episode, snap.Tick, len(snap.Prey), status), 10, 26)
	ebitenutil.DebugPrintAt(screen, "R: reset  Space: pause  Esc: quit", 10, v.height-20)
}

// Layout 固定逻辑分辨率
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// drawBody 圆形身体加一条朝向线
func (v *Viewer) drawBody(screen *ebiten.Image, pose game.EntityPose, center [3]float64, radius float64, clr color.Color) {
	x, y := v.project(pose.Position, center)
	r := float32(radius * v.scale)
	vector.DrawFilledCircle(screen, x, y, r, clr, true)

	rad := pose.Heading * math.Pi / 180
	hx := x + float32(math.Sin(rad))*r*1.6
	hy := y - float32(math.Cos(rad))*r*1.6
	vector.StrokeLine(screen, x, y, hx, hy, 2, colorHeading, true)
}

// project 世界坐标投影到屏幕：区域中心在屏幕中央，+Z 朝上，+X 朝右
func (v *Viewer) project(p, center [3]float64) (float32, float32) {
	x := float64(v.width)/2 + (p[0]-center[0])*v.scale
	y := float64(v.height)/2 - (p[2]-center[2])*v.scale
	return float32(x), float32(y)
}
