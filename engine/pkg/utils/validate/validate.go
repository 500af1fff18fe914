// Package validate
// @Title  结构体校验
// @Description  配置结构体使用binding标签校验,错误信息支持中英文
// @Author  yr  2024/7/19
// @Update  yr  2025/8/2
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	zhTrans "github.com/go-playground/validator/v10/translations/zh"
)

const (
	EN = "en"
	ZH = "zh"
)

const tagName = "binding"

var (
	Validator = validator.New()
	uni       *ut.UniversalTranslator
)

func init() {
	Validator.SetTagName(tagName)

	enLocale, zhLocale := en.New(), zh.New()
	uni = ut.New(enLocale, enLocale, zhLocale)

	enT, _ := uni.GetTranslator(EN)
	if err := enTrans.RegisterDefaultTranslations(Validator, enT); err != nil {
		panic(err)
	}
	zhT, _ := uni.GetTranslator(ZH)
	if err := zhTrans.RegisterDefaultTranslations(Validator, zhT); err != nil {
		panic(err)
	}
}

// Struct 校验结构体,嵌套的指针结构体也会校验
func Struct(s interface{}) error {
	return Validator.Struct(s)
}

// TransError 把校验错误翻译成对应语言,不是校验错误时原样返回
func TransError(err error, lang string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	trans, found := uni.GetTranslator(lang)
	if !found {
		trans, _ = uni.GetTranslator(EN)
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Namespace()+": "+e.Translate(trans))
	}
	return errors.New(strings.Join(msgs, "; "))
}
