// Package main
// @Title  子弹对象池示例
// @Description  从configs/bullets读取配置和目录,启动一组协程不停地发射和回收子弹
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package main

import (
	"time"

	"github.com/njtc406/emberpool/engine/pkg/catalog"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/node"
	"github.com/njtc406/emberpool/engine/pkg/runtime"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/njtc406/emberpool/engine/pkg/utils/util"
	"github.com/panjf2000/ants/v2"
)

func init() {
	catalog.SetFactory("bullet", inf.FactoryFunc(newBullet))
	catalog.SetFactory("explosion", inf.FactoryFunc(newExplosion))
}

const shooters = 8

func main() {
	node.Start(
		node.WithConfPath("./example/configs/bullets"),
		node.WithDefinitions(catalog.New().AddFunc("Rocket", 4, newBullet).Definitions()...),
		node.WithHooks(startShooters),
	)
}

// startShooters 每个射手不停地发射子弹,子弹飞行一段时间之后延时回收
func startShooters(rt *runtime.Runtime) {
	shooterPool, err := ants.NewPool(shooters)
	if err != nil {
		log.SysLogger.Panic(err)
	}

	for i := 0; i < shooters; i++ {
		id := i
		if err = shooterPool.Submit(func() { shoot(rt, id) }); err != nil {
			log.SysLogger.Errorf("submit shooter %d failed: %v", id, err)
		}
	}
}

func shoot(rt *runtime.Runtime, id int) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		err := rt.Call(func() {
			h, err := rt.Spawn("Bullet", runtime.WithPlacement(func(h inf.IRecycle) {
				b := h.(*Bullet)
				b.X, b.Y = float64(id), 0
				b.Speed = 10 + util.RandN(5.0)
				b.Damage = 1 + util.RandN(3)
			}))
			if err != nil {
				log.SysLogger.Errorf("shooter %d spawn failed: %v", id, err)
				return
			}
			flight := 200*time.Millisecond + util.RandN(800*time.Millisecond)
			if _, err = rt.Free(h, flight); err != nil {
				log.SysLogger.Errorf("shooter %d free failed: %v", id, err)
			}

			// 偶尔命中并播放爆炸;子弹已经在等延时回收,这次回收会被合并(suppressed),仍然等定时器到期
			if util.RandN(10) == 0 {
				res, _ := rt.Free(h, 0)
				log.SysLogger.Debugf("shooter %d hit, release %s", id, res)
				if _, err = rt.Singleton("Explosion"); err != nil {
					log.SysLogger.Errorf("explosion failed: %v", err)
				}
			}
		})
		if err != nil {
			// 运行时已经停止
			return
		}
	}
}
