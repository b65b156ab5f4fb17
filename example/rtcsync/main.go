/*
Example use of dstgopher

One shot or scheduled RTC sync tool. Scheduling repeated syncs is caller
responsibility, so this tool is that caller.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/hjkoskel/dstgopher"
	"github.com/hjkoskel/dstgopher/timesource"
)

func doSync(gopher *dstgopher.DstGopher, zone string) error {
	synced, errSynced := dstgopher.SystemClockSynced_adjtimex()
	if errSynced == nil && synced {
		log.Printf("kernel clock reports synchronized already, syncing RTC anyway")
	}

	localTime, errSync := gopher.Sync(zone)
	if errSync != nil {
		return errSync
	}
	fmt.Printf("RTC set to %v (%s)\n", localTime, zone)
	return nil
}

func main() {
	pConfFile := flag.String("conf", "", "YAML configuration file")
	pZone := flag.String("zone", "", "timezone name, overrides configuration file")
	pSysClock := flag.Bool("sysclock", false, "set kernel clock with settimeofday instead of /dev/rtc")
	pShow := flag.Bool("show", false, "print current RTC content and exit")
	pCron := flag.String("cron", "", "cron schedule for repeated sync, overrides configuration file")
	flag.Parse()

	conf := dstgopher.DefaultToolConf()
	if *pConfFile != "" {
		var errConf error
		conf, errConf = dstgopher.LoadToolConf(*pConfFile)
		if errConf != nil {
			fmt.Printf("loading configuration %v err=%v\n", *pConfFile, errConf)
			os.Exit(-1)
		}
	}
	if *pZone != "" {
		conf.Zone = *pZone
	}
	if *pCron != "" {
		conf.CronSchedule = *pCron
	}

	if *pShow {
		dev := dstgopher.RtcDev{Device: conf.RtcDevice}
		now, errNow := dev.ReadDatetime()
		if errNow != nil {
			fmt.Printf("reading RTC err=%v\n", errNow)
			os.Exit(-1)
		}
		fmt.Printf("RTC has %v\n", now)
		return
	}

	var gopher dstgopher.DstGopher
	var errCreate error
	if *pSysClock {
		//Kernel clock as target device, no sync log
		gopher, errCreate = dstgopher.NewDstGopher(
			dstgopher.Config{MaxRetries: conf.MaxRetries},
			&timesource.SntpSource{Host: conf.Host, Timeout: conf.QueryTimeout()},
			&dstgopher.SysClock{},
			nil,
			log.Default())
	} else {
		gopher, errCreate = dstgopher.CreateDefaultDstGopher(conf, log.Default())
	}
	if errCreate != nil {
		fmt.Printf("init err=%v\n", errCreate)
		os.Exit(-1)
	}

	if conf.CronSchedule == "" { //One shot
		errSync := doSync(&gopher, conf.Zone)
		if errSync != nil {
			fmt.Printf("sync err=%v\n", errSync)
			os.Exit(-1)
		}
		return
	}

	c := cron.New()
	_, errAdd := c.AddFunc(conf.CronSchedule, func() {
		errSync := doSync(&gopher, conf.Zone)
		if errSync != nil {
			log.Printf("sync err=%v", errSync)
		}
	})
	if errAdd != nil {
		fmt.Printf("invalid schedule %v err=%v\n", conf.CronSchedule, errAdd)
		os.Exit(-1)
	}
	log.Printf("syncing %s on schedule %v", conf.Zone, conf.CronSchedule)
	c.Run() //Blocks
}
