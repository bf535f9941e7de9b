package main

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "igo",
	Short: "Congestion aware routing engine",
	Long: `igo serves fastest routes over an openstreetmap road network whose edge weights are
rebuilt periodically from a live traffic congestion feed.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./data/config.yaml)")
	rootCmd.PersistentFlags().String("place", "", "place the road network is built for")
	rootCmd.PersistentFlags().String("osm-file", "", "openstreetmap .osm.pbf extract of the place")

	cobra.CheckErr(viper.BindPFlag("network.place", rootCmd.PersistentFlags().Lookup("place")))
	cobra.CheckErr(viper.BindPFlag("network.osm_file", rootCmd.PersistentFlags().Lookup("osm-file")))

	rootCmd.AddCommand(serveCmd, preprocessCmd)
}

func initConfig() {
	util.SetDefaults()
	viper.AutomaticEnv()

	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		err = util.ReadConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "no config file loaded, using defaults:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
