package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LXiong/mahjong/common/config"
	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/common/metrics"
	"github.com/LXiong/mahjong/framework/game/engines/mahjong"
	"github.com/LXiong/mahjong/gate/app"
)

var (
	configFile string

	checkHand        string
	checkMelds       []string
	checkWinType     string
	checkChangeCount int
	checkLimit       int
)

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "gate 麻将手牌分析服务",
	Long:  `gate 麻将手牌分析服务：和牌判定、拆分、弃牌建议与换牌和牌`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(cfg.AppName, cfg.Log.Level)
		log.Info("配置文件: %+v", *cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if cfg.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", cfg.MetricPort)
				if err := metrics.Serve(ctx, fmt.Sprintf("0.0.0.0:%d", cfg.MetricPort)); err != nil {
					log.Error("监控服务异常: %v", err)
				}
			}()
		}

		if err := app.Run(ctx, configFile, cfg); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "在命令行中分析一手牌",
	Example: `  gate check --hand 123m456p789s1122z
  gate check --hand 19m19p19s1234567z --win-type thirteenOrphans
  gate check --hand 1112345678999m --change 1 --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wt, err := mahjong.WinTypeByName(checkWinType, mahjong.WinTypeOptions{})
		if err != nil {
			return err
		}
		alive, melds, err := mahjong.ParseHand(checkHand, checkMelds...)
		if err != nil {
			return err
		}
		return runCheck(cmd.Context(), cmd.OutOrStdout(), wt, mahjong.NewPlayerInfo(alive, melds...))
	},
}

func runCheck(ctx context.Context, w io.Writer, wt mahjong.WinType, player *mahjong.PlayerInfo) error {
	searcher := mahjong.NewSearcher(mahjong.WithWinTypes(wt))

	matched, err := searcher.Match(wt, player, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "手牌: %s  副露: %d  类型: %s\n", mahjong.FormatTiles(player.AliveTiles), player.FixedMelds(), wt.Name())
	fmt.Fprintf(w, "和牌: %v\n", matched)

	if matched {
		n := 0
		for d := range wt.ParseWinTileUnits(player, nil) {
			fmt.Fprintf(w, "  拆分: %s\n", d)
			if n++; checkLimit > 0 && n >= checkLimit {
				break
			}
		}
	}

	if len(player.AliveTiles)%3 == 1 {
		waits, ukeire, err := searcher.WaitsAndUkeire(wt, player, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "听牌: %s  进张: %d\n", mahjong.FormatTypes(waits), ukeire)
	} else {
		advice := wt.DiscardCandidates(player.AliveTiles, player.AliveTiles)
		fmt.Fprintf(w, "弃牌建议: %v\n", advice)
	}

	if checkChangeCount >= 0 {
		changings, err := searcher.CollectChangings(ctx, wt, player, checkChangeCount, player.CandidatePool(), checkLimit)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "换 %d 张和牌: %d 种\n", checkChangeCount, len(changings))
		for _, c := range changings {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	serveCmd.MarkFlagRequired("configFile")

	checkCmd.Flags().StringVar(&checkHand, "hand", "", "手牌，例如 123m456p789s1122z")
	checkCmd.Flags().StringSliceVar(&checkMelds, "meld", nil, "副露，可重复，例如 --meld 777z")
	checkCmd.Flags().StringVar(&checkWinType, "win-type", mahjong.WinTypeNormal, "和牌类型")
	checkCmd.Flags().IntVar(&checkChangeCount, "change", -1, "换牌张数，小于 0 表示不枚举")
	checkCmd.Flags().IntVar(&checkLimit, "limit", 20, "最多输出的拆分与换牌数，0 表示不限")
	checkCmd.MarkFlagRequired("hand")

	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
