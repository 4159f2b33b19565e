package webapp

import (
	"html/template"
)

// themeScript runs in <head>.  The server already rendered the attribute, so
// all this does is keep it in step afterwards: the picker posts the new mode
// to /api/theme, and while the mode is auto an OS flip updates the resolved
// marker (the stylesheet's media rule does the actual repaint).
const themeScript template.JS = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia?window.matchMedia('(prefers-color-scheme: dark)'):null;
  function mode(){ return document.body?(document.body.getAttribute('data-theme-mode')||'dark'):'dark'; }
  function apply(m){
    if(m==='auto'){ root.removeAttribute('data-bs-theme'); }
    else { root.setAttribute('data-bs-theme', m); }
    if(document.body){
      var dark=m==='dark'||(m==='auto'&&media&&media.matches);
      document.body.setAttribute('data-theme-mode', m);
      document.body.setAttribute('data-theme-resolved', dark?'dark':'light');
    }
  }
  document.addEventListener('DOMContentLoaded', function(){
    var select=document.getElementById('theme-mode');
    if(!select){ return; }
    select.addEventListener('change', function(e){
      var m=e.target.value;
      apply(m);
      fetch('/api/theme',{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify({mode:m}),credentials:'same-origin'});
    });
  });
  if(media&&media.addEventListener){
    media.addEventListener('change', function(){ if(mode()==='auto'){ apply('auto'); } });
  }
})();`
